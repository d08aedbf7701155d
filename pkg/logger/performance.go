package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// PerformanceConfig gates the context log builder before any field is built.
type PerformanceConfig struct {
	MinLogLevel     zapcore.Level
	MaxLogPerSecond int
	EnableRateLimit bool
}

// ProductionConfig drops debug entries and caps lower levels at 500/s.
func ProductionConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.InfoLevel,
		MaxLogPerSecond: 500,
		EnableRateLimit: true,
	}
}

// DevelopmentConfig logs everything.
func DevelopmentConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.DebugLevel,
		MaxLogPerSecond: 10000,
		EnableRateLimit: false,
	}
}

// OptimizedLogger skips disabled or rate-limited entries before the builder
// allocates fields for them.
type OptimizedLogger struct {
	config  PerformanceConfig
	logger  *zap.Logger
	limiter *rate.Limiter
}

func NewOptimizedLogger(l *zap.Logger, config PerformanceConfig) *OptimizedLogger {
	return &OptimizedLogger{
		config:  config,
		logger:  l,
		limiter: rate.NewLimiter(rate.Limit(config.MaxLogPerSecond), config.MaxLogPerSecond),
	}
}

// ShouldLog reports whether an entry at level would be written.
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}

	// errors are never dropped by the limiter
	if ol.config.EnableRateLimit && level < zapcore.ErrorLevel && !ol.limiter.Allow() {
		return false
	}

	return true
}

var optimizedLogger atomic.Pointer[OptimizedLogger]

// GetOptimizedLogger returns the gate in front of the global logger, creating
// a development one if InitLogger has not run.
func GetOptimizedLogger() *OptimizedLogger {
	if ol := optimizedLogger.Load(); ol != nil {
		return ol
	}
	ol := NewOptimizedLogger(GetLogger(), DevelopmentConfig())
	optimizedLogger.CompareAndSwap(nil, ol)
	return optimizedLogger.Load()
}
