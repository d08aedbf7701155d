package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "schedulebob-auth", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoadConfig_DurationAsSeconds(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "1800")
	t.Setenv("JWT_REFRESH_TTL", "48h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1800*time.Second, cfg.JWT.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshTTL)
}

func TestLoadConfig_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("DB_PORT", "not-a-port")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App: AppConfig{Environment: "development"},
			JWT: JWTConfig{Secret: "s3cret", AccessTTL: time.Minute, RefreshTTL: time.Hour},
			RateLimit: RateLimitConfig{
				Enabled: true, Backend: "memory", Request: 5, Window: time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "staging", mutate: func(c *Config) { c.App.Environment = "staging" }},
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "prod" }, wantErr: "unknown APP_ENV"},
		{name: "blank secret", mutate: func(c *Config) { c.JWT.Secret = "  " }, wantErr: "JWT_SECRET must not be empty"},
		{name: "default secret in production", mutate: func(c *Config) {
			c.App.Environment = "production"
			c.JWT.Secret = defaultSecret
		}, wantErr: "must be set in production"},
		{name: "zero access ttl", mutate: func(c *Config) { c.JWT.AccessTTL = 0 }, wantErr: "JWT_ACCESS_TTL"},
		{name: "negative refresh ttl", mutate: func(c *Config) { c.JWT.RefreshTTL = -time.Second }, wantErr: "JWT_REFRESH_TTL"},
		{name: "redis limiter without redis", mutate: func(c *Config) { c.RateLimit.Backend = "redis" }, wantErr: "REDIS_ENABLED"},
		{name: "unknown backend", mutate: func(c *Config) { c.RateLimit.Backend = "etcd" }, wantErr: "unknown RATE_LIMIT_BACKEND"},
		{name: "disabled limiter ignores backend", mutate: func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.Backend = "etcd"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "bob", Password: "pw", Name: "auth", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=bob password=pw dbname=auth sslmode=disable", d.DSN())
}
