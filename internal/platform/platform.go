package platform

import (
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	platformErrors "bitbucket.org/crgw/rates-inquiry/internal/platform/errors"
	"bitbucket.org/crgw/rates-inquiry/internal/platform/interfaces"
	platformMiddleware "bitbucket.org/crgw/rates-inquiry/internal/platform/middleware"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/responding"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	MessageInternalError  = "Internal server error"
	AllowedMethods        = "POST, OPTIONS"
	AllowedRequestHeaders = "Content-Type, Accept"
)

// RatesPath is where RegisterRoutes mounts the rates endpoint.
const RatesPath = "/api/rates"

// RegisterRoutes mounts the rates endpoint. Extra handlers (rate limiting) run
// before payload validation.
func RegisterRoutes(
	router *gin.Engine,
	service interfaces.WithGetRates,
	j *journal.Journal,
	guards ...gin.HandlerFunc,
) {
	group := router.Group(
		"/api",
		platformMiddleware.TapLogger,
	)

	handlers := append([]gin.HandlerFunc{}, guards...)
	handlers = append(handlers,
		platformMiddleware.PrepareRatesParams(j),
		ratesHandler(service, j),
	)

	group.POST("/rates", handlers...)
	group.OPTIONS("/rates", preflight)
}

func ratesHandler(service interfaces.WithGetRates, j *journal.Journal) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)

		slowLog := slowlog.CreateLogger(logger)
		key := "gondwana:rates"
		slowLog.Start(key)
		defer slowLog.Stop(key)

		params, ok := ctx.MustGet(platformMiddleware.ParamsKey).(*schema.RatesRequestParams)
		if !ok {
			responding.HandleError(ctx, http.StatusInternalServerError, MessageInternalError, platformErrors.ErrorMissingParams)
			return
		}

		response, err := service.GetRates(ctx.Request.Context(), *params, logger)
		if err != nil {
			var transportErr *schema.TransportError
			if errors.As(err, &transportErr) {
				j.Error(ctx.Request.Context(), "Remote API call failed: "+transportErr.Message)
				responding.HandleError(ctx, http.StatusInternalServerError, schema.MessageRemoteFailed, errors.New(transportErr.Message))
				return
			}

			j.Error(ctx.Request.Context(), "Unexpected error: "+err.Error())
			responding.HandleError(ctx, http.StatusInternalServerError, MessageInternalError, err)
			return
		}

		j.Info(ctx.Request.Context(), fmt.Sprintf("Remote API responded with HTTP %d", response.StatusCode))

		responding.Success(ctx, response)
	}
}

// preflight answers OPTIONS even when the caller sends no Origin header.
func preflight(ctx *gin.Context) {
	header := ctx.Writer.Header()
	if header.Get("Access-Control-Allow-Origin") == "" {
		header.Set("Access-Control-Allow-Origin", "*")
	}
	header.Set("Access-Control-Allow-Methods", AllowedMethods)
	header.Set("Access-Control-Allow-Headers", AllowedRequestHeaders)

	ctx.Status(http.StatusOK)
}
