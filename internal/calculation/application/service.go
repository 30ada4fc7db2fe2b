// Package application 包含期权计算服务的用例逻辑
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
	"github.com/wyfcoding/blackscholes/pkg/clock"
	"github.com/wyfcoding/blackscholes/pkg/logger"
	"github.com/wyfcoding/blackscholes/pkg/metrics"
)

// CalculationService 期权计算应用服务
// 负责定价、保存记录并发布事件
type CalculationService struct {
	repo      domain.CalculationRepository // 计算记录仓储接口
	publisher domain.EventPublisher        // 事件发布者
	metrics   *metrics.Metrics             // 可为 nil
	clock     clock.Clock
}

// NewCalculationService 创建应用服务实例
// clk 为 nil 时使用系统时间
func NewCalculationService(repo domain.CalculationRepository, publisher domain.EventPublisher, m *metrics.Metrics, clk clock.Clock) *CalculationService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &CalculationService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		clock:     clk,
	}
}

// Calculate 计算看涨、看跌价格并保存记录
// 非有限价格不是错误，原样保存并返回
func (s *CalculationService) Calculate(ctx context.Context, cmd CalculateCommand) (*CalculateResult, error) {
	in := cmd.toInput()
	calc := domain.NewCalculation(in)

	logger.Debug(ctx, "Option priced",
		"call_price", calc.CallPrice.Float64(),
		"put_price", calc.PutPrice.Float64(),
		"parity_gap", domain.ParityGap(in, calc.CallPrice.Float64(), calc.PutPrice.Float64()),
	)

	if err := s.repo.Save(ctx, calc); err != nil {
		logger.Error(ctx, "Failed to save calculation", "error", err)
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}

	nonFinite := calc.HasNonFinitePrice()
	if s.metrics != nil {
		s.metrics.RecordCalculation(nonFinite)
	}
	if nonFinite {
		logger.Warn(ctx, "Calculation produced non-finite price",
			"calculation_id", calc.ID,
			"S", cmd.S, "K", cmd.K, "T", cmd.T,
			"r", cmd.R, "sigma", cmd.Sigma, "q", cmd.Q,
		)
	}

	// 记录已提交，发布失败只记日志
	event := domain.NewCalculationCreatedEvent(calc, s.clock.Now())
	if err := s.publisher.PublishCalculationCreated(ctx, event); err != nil {
		logger.Warn(ctx, "Failed to publish calculation created event",
			"calculation_id", calc.ID,
			"error", err,
		)
	}

	logger.Info(ctx, "Calculation saved", "calculation_id", calc.ID)

	return &CalculateResult{
		CallPrice:     calc.CallPrice,
		PutPrice:      calc.PutPrice,
		CalculationID: calc.ID,
	}, nil
}

// ListCalculations 列出全部计算记录，最新的在前
func (s *CalculationService) ListCalculations(ctx context.Context) ([]*domain.Calculation, error) {
	calcs, err := s.repo.List(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to list calculations", "error", err)
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return calcs, nil
}
