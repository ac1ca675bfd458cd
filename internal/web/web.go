package web

import (
	"net/http"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/apidoc"
	"bitbucket.org/crgw/rates-inquiry/internal/config"
	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	"bitbucket.org/crgw/rates-inquiry/internal/platform"
	"bitbucket.org/crgw/rates-inquiry/internal/platform/interfaces"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/responding"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	MessageMethodNotAllowed      = "Method not allowed"
	MessageRatesMethodNotAllowed = "Method not allowed. Use POST."
)

type Options struct {
	Service    interfaces.WithGetRates
	Journal    *journal.Journal
	Web        config.WebConfig
	Production bool
}

func SetupRouter(log *zerolog.Logger, options Options) *gin.Engine {
	startTime := time.Now()

	if options.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery).
		Use(Cors(options.Web.CorsAllowedOrigins))

	router.NoMethod(func(c *gin.Context) {
		message := MessageMethodNotAllowed
		if c.Request.URL.Path == platform.RatesPath {
			message = MessageRatesMethodNotAllowed
		}

		responding.HandleError(c, http.StatusMethodNotAllowed, message, nil)
	})

	router.NoRoute(func(c *gin.Context) {
		responding.HandleError(c, http.StatusNotFound, "Not found", nil)
	})

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", apidoc.Document())
	})

	router.GET("/", FrontDoor(options.Web.FrontDoorPath))

	if options.Web.Pprof {
		pprof.Register(router)
	}

	var guards []gin.HandlerFunc
	if options.Web.RateLimitPerMinute > 0 {
		guards = append(guards, NewRateLimiter(options.Web.RateLimitPerMinute).Middleware())
	}

	platform.RegisterRoutes(
		router,
		options.Service,
		options.Journal,
		guards...,
	)

	return router
}
