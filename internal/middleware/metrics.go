package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records the outcome of a served request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// MetricsMiddleware reports method, matched route, status and latency of every request.
// Unmatched requests are reported under the route "unmatched" to bound label cardinality.
func MetricsMiddleware(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
