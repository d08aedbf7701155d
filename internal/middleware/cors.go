package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/pkg/logger"
)

var allowHeaders = strings.Join([]string{
	constants.HeaderContentType, "Content-Length", "Accept-Encoding",
	constants.HeaderAuthorization, "Accept", "Origin", "Cache-Control",
	"X-Requested-With", constants.HeaderXRequestID,
}, ", ")

var exposeHeaders = constants.HeaderXRequestID + ", " + constants.HeaderRetryAfter

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", exposeHeaders)

		if c.Request.Method == http.MethodOptions {
			logger.DebugWithContext(c.Request.Context(), "CORS preflight handled").
				String("origin", c.GetHeader("Origin")).
				String("path", c.Request.URL.Path).
				Log()
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
