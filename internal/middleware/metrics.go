package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics reports every request to recorder, labelled by the matched route.
func Metrics(recorder metrics.HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
