package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/metrics"
)

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start).Milliseconds()

		// Determine success based on status code
		statusCode := c.Writer.Status()
		success := statusCode < 400

		// Record metrics
		metrics.Get().IncrementRequests(success, latency)

		// Track endpoint-specific metrics
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.Get().TrackEndpoint(path, c.Request.Method, statusCode, latency)
	}
}
