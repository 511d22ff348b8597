package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"orca-backend/logger"
	"orca-backend/metrics"
)

// RequestLogger logs every request and records it in the HTTP metrics.
// Either argument may be nil.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		elapsed := time.Since(start)
		m.RecordHTTPRequest(method, path, strconv.Itoa(status), elapsed)

		if log == nil {
			return
		}
		fields := []interface{}{
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		}
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
