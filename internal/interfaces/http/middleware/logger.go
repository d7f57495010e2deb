package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/normname/pkg/logger"
)

// LoggerMiddleware 请求日志
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("HTTP request", args...)
			return
		}
		logger.Debug("HTTP request", args...)
	}
}
