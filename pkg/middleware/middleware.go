// Package middleware provides the gin middleware chain: auth header
// verification, storage manager injection, request logging, CORS, rate
// limiting and Prometheus instrumentation.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/metrics"
)

// PrometheusMiddleware records per-request counters and latency.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// use the route template, not the raw path, to keep cardinality low
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RequestCounter.WithLabelValues(method, path).Inc()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
