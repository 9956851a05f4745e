package middleware

import (
	"time"

	"github.com/deenhub/deenhub-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger emits one structured log event per handled request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		l := logger.Logger()
		l.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("http request")
	}
}
