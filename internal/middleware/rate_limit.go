package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/pkg/circuit"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request from key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket refilling maxRequest tokens per
// window. It only limits within one process.
type MemoryLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(maxRequest int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(maxRequest) / window.Seconds()),
		burst:   maxRequest,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle for a full window; they would be full again anyway.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) >= l.window {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RedisLimiter is a fixed-window counter shared by every instance. The window
// starts with the first hit and ends when the key expires.
type RedisLimiter struct {
	client     redis.UniversalClient
	maxRequest int
	window     time.Duration
	breaker    *circuit.Breaker
}

func NewRedisLimiter(client redis.UniversalClient, maxRequest int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:     client,
		maxRequest: maxRequest,
		window:     window,
	}
}

// WithBreaker stops calling redis while it keeps failing; Allow then returns
// circuit.ErrCircuitOpen right away.
func (l *RedisLimiter) WithBreaker(b *circuit.Breaker) *RedisLimiter {
	l.breaker = b
	return l
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.breaker == nil {
		return l.hit(ctx, key)
	}

	var allowed bool
	err := l.breaker.Execute(func() error {
		var err error
		allowed, err = l.hit(ctx, key)
		return err
	})
	return allowed, err
}

// hit sends INCR and EXPIRE NX in one MULTI/EXEC. Setting the TTL on every hit
// means a counter that somehow lost it gets one again on the next request.
func (l *RedisLimiter) hit(ctx context.Context, key string) (bool, error) {
	redisKey := constants.RateLimitKeyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit hit: %w", err)
	}

	return incr.Val() <= int64(l.maxRequest), nil
}

// RateLimit rejects clients over budget with 429. A limiter error lets the
// request through so a redis outage does not take login down with it.
func RateLimit(limiter Limiter, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(math.Ceil(window.Seconds())))

	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), constants.ModuleMiddleware, "RateLimit")
		ip := c.ClientIP()

		allowed, err := limiter.Allow(ctx, ip)
		if err != nil {
			logger.WarnWithContext(ctx, "Rate limiter unavailable, allowing request").
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			c.Next()
			return
		}

		if !allowed {
			logger.WarnWithContext(ctx, "Rate limit exceeded").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Duration(window).
				Log()

			c.Header(constants.HeaderRetryAfter, retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				constants.BuildErrorResponse(constants.MsgTooManyRequests, http.StatusTooManyRequests))
			return
		}

		c.Next()
	}
}
