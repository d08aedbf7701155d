package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schedulebob/auth/config"
	"github.com/schedulebob/auth/internal/handler"
	"github.com/schedulebob/auth/internal/middleware"
	"github.com/schedulebob/auth/pkg/circuit"
	"github.com/schedulebob/auth/pkg/logger"
	"github.com/schedulebob/auth/pkg/metrics"
	"github.com/schedulebob/auth/pkg/redis"
)

type Router struct {
	authHandler   *handler.AuthHandler
	healthHandler *handler.HealthHandler

	validMw  *middleware.ValidationMiddleware
	authMw   *middleware.Authenticator
	limiter  middleware.Limiter
	recorder metrics.HTTPRecorder
	gatherer prometheus.Gatherer
	Config   *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	authMw *middleware.Authenticator,
	limiter middleware.Limiter,
	recorder metrics.HTTPRecorder,
	gatherer prometheus.Gatherer,
	config *config.Config,
) *Router {
	if recorder == nil {
		recorder = metrics.Nop
	}
	return &Router{
		authHandler:   auth,
		healthHandler: health,

		validMw:  validMw,
		authMw:   authMw,
		limiter:  limiter,
		recorder: recorder,
		gatherer: gatherer,
		Config:   config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(r.recorder))
	router.Use(middleware.RequestTimeout(r.Config.App.Timeout))

	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(r.gatherer)))
	}

	api := router.Group("/api")
	api.Use(r.authMw.Authenticate())
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		r.authRoutes(api)
	}

	return router
}

// NewRateLimiter picks the limiter backend from cfg. It returns nil when rate
// limiting is off, and falls back to memory when redis is not available.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) middleware.Limiter {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Backend == "redis" && rdb.IsEnabled() {
		breaker := circuit.NewBreaker("rate-limit-redis", circuit.DefaultConfig(), logger.GetLogger())
		return middleware.NewRedisLimiter(rdb.Raw(), cfg.Request, cfg.Window).WithBreaker(breaker)
	}
	return middleware.NewMemoryLimiter(cfg.Request, cfg.Window)
}
