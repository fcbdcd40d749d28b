package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives one call per finished request. route is the
// matched gin pattern, empty for unmatched paths.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, d time.Duration)
}

// probe paths are observed but not logged
var quietRoutes = map[string]bool{
	"/metrics":    true,
	"/api/health": true,
}

// Logger writes an [HTTP] line per request and reports it to obs.
func Logger(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		route := c.FullPath()
		status := c.Writer.Status()

		if obs != nil {
			obs.ObserveRequest(route, c.Request.Method, status, latency)
		}
		if quietRoutes[route] && status < 400 {
			return
		}
		log.Printf("[HTTP] request_id=%s method=%s path=%s route=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c), c.Request.Method, c.Request.URL.Path, route, status,
			float64(latency.Microseconds())/1000.0, c.ClientIP())
	}
}
