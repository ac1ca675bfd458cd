package web

import (
	"fmt"
	"net/http"

	"bitbucket.org/crgw/rates-inquiry/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const MessageInternalError = "Internal server error"

func PanicRecovery(c *gin.Context) {
	gin.CustomRecoveryWithWriter(&recoveryWriter{
		logger: c.MustGet(LoggerKey).(*zerolog.Logger),
	}, func(c *gin.Context, err any) {
		responding.HandleError(c, http.StatusInternalServerError, MessageInternalError, fmt.Errorf("%v", err))
	})(c)
}

type recoveryWriter struct {
	logger *zerolog.Logger
}

func (r *recoveryWriter) Write(p []byte) (n int, err error) {
	str := string(p)
	r.
		logger.
		Error().
		Str("label", "panic").
		Msg(str)

	return len(str), nil
}
