package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"docorch/internal/metrics"
)

// Metrics records request counts, latency and in-flight requests on m.
// Paths are reported by route template so session ids do not explode label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.IncInFlight()
		defer m.DecInFlight()
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
