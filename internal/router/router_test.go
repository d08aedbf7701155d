package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/schedulebob/auth/config"
	"github.com/schedulebob/auth/internal/dto"
	"github.com/schedulebob/auth/internal/handler"
	"github.com/schedulebob/auth/internal/middleware"
	"github.com/schedulebob/auth/internal/service"
	"github.com/schedulebob/auth/pkg/metrics"
	"github.com/schedulebob/auth/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, string, string) (*dto.LoginResponse, error) {
	return &dto.LoginResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}, nil
}

func (stubAuthService) RefreshAccessToken(context.Context, string) (*dto.AccessTokenResponse, error) {
	return &dto.AccessTokenResponse{AccessToken: "a", TokenType: "Bearer"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Timeout: 5 * time.Second},
		RateLimit: config.RateLimitConfig{Enabled: true, Backend: "memory", Request: 2, Window: time.Minute},
	}
}

func newTestEngine(t *testing.T, limiter middleware.Limiter) (*gin.Engine, *service.TokenProvider) {
	t.Helper()

	tokens, err := service.NewTokenProvider(service.TokenConfig{
		Secret:     "router-test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	validMw, err := middleware.NewValidationMiddleware()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	r := NewRouter(
		handler.NewAuthHandler(stubAuthService{}),
		handler.NewHealthHandler(nil, redis.Disabled()),
		validMw,
		middleware.NewAuthenticator(tokens),
		limiter,
		metrics.NewCollector(reg),
		reg,
		testConfig(),
	)
	return r.SetupRoutes(), tokens
}

func TestSetupRoutes_AuthEndpoints(t *testing.T) {
	engine, tokens := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"password123"}`))
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.Header.Set("Authorization", "Basic xyz")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	access, err := tokens.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, dto.MeResponse{Subject: "a@x.com", Role: "USER"}, me)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupRoutes_HealthAndMetrics(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "no database configured")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/api/health",status="503"} 1`)
}

func TestSetupRoutes_RateLimitsAuthGroup(t *testing.T) {
	engine, _ := newTestEngine(t, middleware.NewMemoryLimiter(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code, "health is outside the limited group")
}

func TestNewRateLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Backend: "memory", Request: 5, Window: time.Minute}
	assert.Nil(t, NewRateLimiter(cfg, redis.Disabled()))

	cfg.Enabled = true
	assert.IsType(t, &middleware.MemoryLimiter{}, NewRateLimiter(cfg, redis.Disabled()))

	cfg.Backend = "redis"
	assert.IsType(t, &middleware.MemoryLimiter{}, NewRateLimiter(cfg, redis.Disabled()), "falls back without redis")

	mr := miniredis.RunT(t)
	rdb := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = rdb.Close() })
	assert.IsType(t, &middleware.RedisLimiter{}, NewRateLimiter(cfg, rdb))
}
