package middlewares

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var requestsTotal atomic.Int64

// RequestsTotal reports the number of requests served by this process.
func RequestsTotal() int64 {
	return requestsTotal.Load()
}

// LoggingMiddleware emits one structured log line per request and tags it
// with a correlation id, echoed back in the X-Correlation-Id header.
func LoggingMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		correlationId := c.Request.Header.Get("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		c.Writer.Header().Set("X-Correlation-Id", correlationId)

		c.Next()

		requestsTotal.Add(1)
		logger.WithFields(logrus.Fields{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"elapsedMs":     float64(time.Since(start).Microseconds()) / 1000.0,
			"correlationId": correlationId,
		}).Info("request completed")
	}
}
