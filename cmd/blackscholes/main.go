package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/blackscholes/internal/calculation/application"
	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
	"github.com/wyfcoding/blackscholes/internal/calculation/infrastructure/messaging"
	"github.com/wyfcoding/blackscholes/internal/calculation/infrastructure/repository"
	httphandler "github.com/wyfcoding/blackscholes/internal/calculation/interfaces/http"
	"github.com/wyfcoding/blackscholes/pkg/clock"
	"github.com/wyfcoding/blackscholes/pkg/config"
	"github.com/wyfcoding/blackscholes/pkg/db"
	"github.com/wyfcoding/blackscholes/pkg/logger"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
	"github.com/wyfcoding/blackscholes/pkg/middleware"
	"github.com/wyfcoding/blackscholes/pkg/mq"
	"github.com/wyfcoding/blackscholes/pkg/ratelimit"
	"github.com/wyfcoding/blackscholes/pkg/redisclient"
	"github.com/wyfcoding/blackscholes/pkg/trace"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. 加载配置
	configPath := config.GetEnv("CONFIG_PATH", "configs/blackscholes/config.toml")
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		ServiceName: cfg.ServiceName,
		Level:       cfg.Logger.Level,
		Format:      cfg.Logger.Format,
		Output:      cfg.Logger.Output,
		FilePath:    cfg.Logger.FilePath,
		MaxSize:     cfg.Logger.MaxSize,
		MaxBackups:  cfg.Logger.MaxBackups,
		MaxAge:      cfg.Logger.MaxAge,
		Compress:    cfg.Logger.Compress,
		WithCaller:  cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.WithModule("main")

	log.InfoContext(ctx, "Starting BlackScholesService", "version", cfg.Version, "config", configPath)

	// 3. 初始化追踪
	if cfg.Tracing.Enabled {
		shutdown, err := trace.InitTracer(ctx, cfg.ServiceName, cfg.Tracing.CollectorEndpoint, cfg.Tracing.SamplingRate)
		if err != nil {
			log.ErrorContext(ctx, "Failed to initialize tracer", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.ErrorContext(ctx, "Failed to shutdown tracer", "error", err)
				}
			}()
			log.InfoContext(ctx, "Tracer initialized", "endpoint", cfg.Tracing.CollectorEndpoint)
		}
	}

	// 4. 初始化数据库
	dbConfig := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}
	gormDB, err := db.Init(dbConfig)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer gormDB.Close()

	// 5. 自动迁移数据库
	if err := repository.AutoMigrate(gormDB.DB); err != nil {
		log.ErrorContext(ctx, "Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// 6. 初始化限流器
	rateLimiter, redisClient, err := newRateLimiter(ctx, cfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize rate limiter", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 7. 初始化事件发布
	publisher, producer := newEventPublisher(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				log.ErrorContext(ctx, "Failed to close kafka producer", "error", err)
			}
		}()
	}

	// 8. 初始化层级依赖
	m := metrics.New("blackscholes")
	clk := clock.NewRealClock()

	// Infrastructure
	calcRepo := repository.NewCalculationRepository(gormDB.DB, clk, m)

	// Application
	svc := application.NewCalculationService(calcRepo, publisher, m, clk)

	// 9. 创建服务器
	httpServer := createHTTPServer(cfg, svc, rateLimiter, m)

	g, gctx := errgroup.WithContext(ctx)

	// 10. 启动 HTTP 服务器
	g.Go(func() error {
		log.InfoContext(ctx, "Starting HTTP server", "addr", httpServer.Addr, "cors_origin", cfg.HTTP.CORSOrigin)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 11. 启动指标服务器
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = m.NewServer(cfg.Metrics.Port, cfg.Metrics.Path)
		g.Go(func() error {
			log.InfoContext(ctx, "Starting metrics server", "addr", metricsServer.Addr, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	// 12. 优雅关停
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			log.InfoContext(ctx, "Shutting down BlackScholesService", "signal", sig.String())
		case <-gctx.Done():
			log.InfoContext(ctx, "Server failed, shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "HTTP server shutdown error", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.ErrorContext(ctx, "Metrics server shutdown error", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "Server exited with error", "error", err)
		return
	}
	log.InfoContext(ctx, "Server exited")
}

// newRateLimiter 按配置选择本地或 Redis 限流器，未启用 Redis 时 client 为 nil
func newRateLimiter(ctx context.Context, cfg *config.Config) (ratelimit.RateLimiter, *redis.Client, error) {
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Backend != "redis" {
		return ratelimit.NewLocalRateLimiter(), nil, nil
	}

	client, err := redisclient.New(ctx, redisclient.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return ratelimit.NewRedisRateLimiter(client), client, nil
}

// newEventPublisher 启用 Kafka 时返回 Kafka 发布者与需要关闭的生产者
func newEventPublisher(cfg *config.Config) (domain.EventPublisher, *mq.KafkaProducer) {
	if !cfg.Kafka.Enabled {
		return messaging.NopEventPublisher{}, nil
	}

	producer := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	return messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic), producer
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(cfg *config.Config, app *application.CalculationService, rateLimiter ratelimit.RateLimiter, m *metrics.Metrics) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 添加中间件
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware(cfg.HTTP.CORSOrigin))
	router.Use(middleware.GinMetricsMiddleware(m))
	router.Use(middleware.RateLimitMiddleware(rateLimiter, cfg.RateLimit))

	// 注册路由
	httpHandler := httphandler.NewCalculationHandler(app)
	httpHandler.RegisterRoutes(router)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
