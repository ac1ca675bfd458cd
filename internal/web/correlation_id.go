package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CorrelationIdHeader = "x-correlation-id"
	CorrelationIdKey    = "correlationId"
)

// CorrelationId takes the correlation id from the request header, or creates one,
// and echoes it on the response.
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(CorrelationIdHeader)
	if correlationId == "" {
		correlationId = uuid.New().String()
	}

	c.Set(CorrelationIdKey, correlationId)
	c.Header(CorrelationIdHeader, correlationId)
}
