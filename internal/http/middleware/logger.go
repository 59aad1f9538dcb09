package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request, tagged with the dashboard module the
// path belongs to (auth, inventory, orders, ...) for quick log filtering.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		log.Printf("[HTTP] request_id=%s module=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			routeModule(c.Request.URL.Path),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}

// routeModule is the first path segment under /api, or "-" for anything
// outside the API surface.
func routeModule(path string) string {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return "-"
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "-"
	}
	return rest
}
