package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"rosmarino/internal/shared/logger"
)

// RequestLogging logs one line per request with method, path, status, and
// latency. Skips the health endpoint to keep probe noise out of the logs.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP())
	}
}
