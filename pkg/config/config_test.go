package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads toml file", func(t *testing.T) {
		path := writeConfig(t, `
service_name = "pricer"

[http]
port = 9001
cors_origin = "http://example.test"

[database]
driver = "sqlite"
dsn = "calc.db"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "pricer", cfg.ServiceName)
		assert.Equal(t, 9001, cfg.HTTP.Port)
		assert.Equal(t, "http://example.test", cfg.HTTP.CORSOrigin)
		assert.Equal(t, "calc.db", cfg.Database.DSN)
		// 未配置的键回落到默认值
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, 9090, cfg.Metrics.Port)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, `
[http]
port = 9001
`)
		t.Setenv("APP_HTTP_PORT", "9555")
		t.Setenv("APP_DATABASE_DSN", "env.db")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9555, cfg.HTTP.Port)
		assert.Equal(t, "env.db", cfg.Database.DSN)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "blackscholes", cfg.ServiceName)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.CORSOrigin)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "black_scholes.db", cfg.Database.DSN)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "blackscholes.calculation.created", cfg.Kafka.Topic)

	_, err = LoadWithDefaults(writeConfig(t, "[http\nport = "))
	assert.Error(t, err, "malformed file must not silently fall back to defaults")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServiceName: "blackscholes",
			HTTP:        HTTPConfig{Port: 8000},
			Database:    DatabaseConfig{Driver: "sqlite", DSN: "black_scholes.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"empty service name", func(c *Config) { c.ServiceName = "" }, "service_name is required"},
		{"bad http port", func(c *Config) { c.HTTP.Port = 70000 }, "invalid HTTP port"},
		{"bad metrics port", func(c *Config) { c.Metrics = MetricsConfig{Enabled: true, Port: 0} }, "invalid metrics port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"mysql without dsn", func(c *Config) { c.Database = DatabaseConfig{Driver: "mysql"} }, "database DSN is required"},
		{"unknown limiter", func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, Backend: "memcached"} }, "unsupported rate limit backend"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }, "kafka brokers are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "dev", cfg.Environment)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
