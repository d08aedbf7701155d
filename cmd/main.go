package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	configs "github.com/schedulebob/auth/config"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/internal/handler"
	"github.com/schedulebob/auth/internal/middleware"
	"github.com/schedulebob/auth/internal/repository"
	"github.com/schedulebob/auth/internal/router"
	"github.com/schedulebob/auth/internal/service"
	"github.com/schedulebob/auth/pkg/database"
	"github.com/schedulebob/auth/pkg/logger"
	"github.com/schedulebob/auth/pkg/metrics"
	"github.com/schedulebob/auth/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(config.Database)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	passwords := service.NewPasswordVerifier(bcrypt.DefaultCost)

	if err := database.Seed(context.Background(), db, config.Seed, passwords); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	tokens, err := service.NewTokenProvider(service.TokenConfig{
		Secret:     config.JWT.Secret,
		AccessTTL:  config.JWT.AccessTTL,
		RefreshTTL: config.JWT.RefreshTTL,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize token provider", zap.Error(err))
	}

	// Services
	store := repository.NewStore(db)
	authService := service.NewAuthService(store, tokens, passwords, collector)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Middleware
	validationMiddleware, err := middleware.NewValidationMiddleware()
	if err != nil {
		logger.GetLogger().Fatal("Failed to register validators", zap.Error(err))
	}
	authenticator := middleware.NewAuthenticator(tokens)
	limiter := router.NewRateLimiter(config.RateLimit, redisClient)

	engine := router.NewRouter(
		authHandler,
		healthHandler,

		validationMiddleware,
		authenticator,
		limiter,
		collector,
		registry,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.Bool("rate_limit", limiter != nil),
			zap.Bool("redis", redisClient.IsEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}
