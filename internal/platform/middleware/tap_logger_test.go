package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	m "bitbucket.org/crgw/rates-inquiry/internal/platform/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTapLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("logger", &log)
	})
	router.GET("/api/rates", m.TapLogger, func(c *gin.Context) {
		c.MustGet("logger").(*zerolog.Logger).Info().Msg("tapped")
		c.Status(http.StatusNoContent)
	})

	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/api/rates", http.NoBody)
	router.ServeHTTP(response, request)

	assert.Equal(t, http.StatusNoContent, response.Code)
	assert.Contains(t, out.String(), `"route":"/api/rates"`)
	assert.Contains(t, out.String(), `"operationId":"`)
}
