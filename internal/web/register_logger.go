package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const LoggerKey = "logger"

func RegisterLogger(logger *zerolog.Logger) func(c *gin.Context) {
	return func(c *gin.Context) {
		correlationId := c.MustGet(CorrelationIdKey).(string)

		requestLogger := logger.
			With().
			Str("correlationId", correlationId).
			Str("clientIp", c.ClientIP()).
			Logger()

		c.Set(LoggerKey, &requestLogger)
	}
}
