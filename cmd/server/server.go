//go:build !integration

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/apidoc"
	"bitbucket.org/crgw/rates-inquiry/internal/config"
	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	"bitbucket.org/crgw/rates-inquiry/internal/platform/implementations/gondwana"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/logging"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/redisfactory"
	"bitbucket.org/crgw/rates-inquiry/internal/web"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// serverApp serves until stop fires, then drains in-flight requests.
func serverApp(httpServer *http.Server, logger *zerolog.Logger, stop <-chan os.Signal) int {
	done := make(chan error, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-done:
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	case <-stop:
	}

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.
			Error().
			Err(err).
			Msg("Shutdown incomplete")
		return 1
	}

	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}

	return 0
}

func openJournal(cfg config.JournalConfig, redisFactory *redisfactory.Factory, log *zerolog.Logger) (*journal.Journal, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}

	var (
		sinks   []journal.Sink
		closers []func() error
	)

	fileSink, err := journal.OpenFile(cfg.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Path).Msg("Journal file unavailable")
	} else {
		sinks = append(sinks, fileSink)
		closers = append(closers, fileSink.Close)
	}

	if client := redisFactory.JournalClient(); client != nil {
		sinks = append(sinks, journal.NewRedisSink(client, cfg.Stream, cfg.StreamMaxLen))
	}

	return journal.New(log, sinks...), func() {
		for _, closeSink := range closers {
			_ = closeSink()
		}
	}
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.New("error").Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logging.New(cfg.Log.Level)

	if _, err := apidoc.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Invalid API description")
	}

	redisFactory, err := redisfactory.New(cfg.Journal.RedisURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis unavailable")
	}

	j, closeJournal := openJournal(cfg.Journal, redisFactory, log)

	service := gondwana.New(gondwana.Options{
		URL:        cfg.Remote.URL,
		UnitTypeID: cfg.Remote.UnitTypeID,
		Timeout:    cfg.Remote.Timeout,
		Journal:    j,
	})

	appRouter := web.SetupRouter(log, web.Options{
		Service:    service,
		Journal:    j,
		Web:        cfg.Web,
		Production: cfg.IsProduction(),
	})

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:              cfg.Address(host),
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	code := serverApp(httpServer, log, stop)

	closeJournal()
	_ = redisFactory.Close()

	os.Exit(code)
}
