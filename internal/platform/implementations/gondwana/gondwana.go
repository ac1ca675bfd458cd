package gondwana

import (
	"context"
	"net/http"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/slowlog"
	"github.com/rs/zerolog"
)

const DefaultTimeout = 30 * time.Second

type Options struct {
	URL        string
	UnitTypeID int
	Timeout    time.Duration
	Journal    *journal.Journal
	// Transport defaults to a clone of http.DefaultTransport.
	Transport http.RoundTripper
}

type gondwana struct {
	url           string
	unitTypeID    int
	timeout       time.Duration
	journal       *journal.Journal
	httpTransport http.RoundTripper
}

func (g *gondwana) GetRates(ctx context.Context, params schema.RatesRequestParams, logger *zerolog.Logger) (schema.RemoteRatesResponse, error) {
	ratesRequest := RatesRequest{
		url:        g.url,
		unitTypeID: g.unitTypeID,
		timeout:    g.timeout,
		params:     params,
		journal:    g.journal,
		logger:     logger,
		slowLogger: slowlog.CreateLogger(logger),
	}

	return ratesRequest.Execute(ctx, g.httpTransport)
}

func New(options Options) *gondwana {
	transport := options.Transport
	if transport == nil {
		defaultTransport := http.DefaultTransport.(*http.Transport).Clone()
		// improves durations a lot
		defaultTransport.DisableKeepAlives = true
		transport = defaultTransport
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &gondwana{
		url:           options.URL,
		unitTypeID:    options.UnitTypeID,
		timeout:       timeout,
		journal:       options.Journal,
		httpTransport: transport,
	}
}
