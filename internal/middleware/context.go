package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/internal/constants"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
)

// RequestContext seeds the request context with the request id, client ip
// and user agent read by the context logger. An incoming X-Request-ID is
// kept, otherwise a new one is generated; either way it is echoed back.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithRequestInfo(
			c.Request.Context(),
			c.GetHeader(constants.HeaderXRequestID),
			c.ClientIP(),
			c.GetHeader(constants.HeaderUserAgent),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Header(constants.HeaderXRequestID, ctxutil.GetRequestID(ctx))

		logger.DebugWithContext(ctx, "Request started").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Log()

		c.Next()

		logger.DebugWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// RequestTimeout bounds the request context so database calls give up once
// the client would have.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
