package responding

import (
	"net/http"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleError writes the failure envelope and aborts the chain. The details field
// carries err's text, or stays empty.
func HandleError(ctx *gin.Context, code int, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}

	if logger, ok := ctx.Get("logger"); ok {
		if log, ok := logger.(*zerolog.Logger); ok {
			log.Error().
				Int("code", code).
				Str("details", details).
				Msg(message)
		}
	}

	ctx.AbortWithStatusJSON(code, schema.ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// Success writes the success envelope around the remote body.
func Success(ctx *gin.Context, response schema.RemoteRatesResponse) {
	ctx.JSON(http.StatusOK, schema.RatesResponse{
		Success:  true,
		Data:     response.Body,
		HttpCode: response.StatusCode,
	})
}
