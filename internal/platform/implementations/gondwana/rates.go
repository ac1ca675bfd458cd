package gondwana

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	"bitbucket.org/crgw/rates-inquiry/internal/quote"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/requesting"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/slowlog"
	"github.com/rs/zerolog"
)

type RatesRequest struct {
	url        string
	unitTypeID int
	timeout    time.Duration
	params     schema.RatesRequestParams
	journal    *journal.Journal
	logger     *zerolog.Logger
	slowLogger slowlog.Logger
}

func (r *RatesRequest) Execute(ctx context.Context, httpTransport http.RoundTripper) (schema.RemoteRatesResponse, error) {
	r.slowLogger.Start("gondwana:rates:execute:client")

	client := &http.Client{
		Timeout: r.timeout,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(r.logger, "remote-rates"),
				requesting.NewBucketTransportMiddleware(r.journal),
			},
		},
	}

	r.slowLogger.Stop("gondwana:rates:execute:client")

	remoteRequest := quote.FromParams(r.params, r.unitTypeID)

	body, err := json.Marshal(remoteRequest)
	if err != nil {
		return schema.RemoteRatesResponse{}, err
	}

	r.journal.Debug(ctx, "Payload transformed: "+string(body))
	r.journal.Info(ctx, "Calling remote API...")

	r.slowLogger.Start("gondwana:rates:execute:request")
	defer r.slowLogger.Stop("gondwana:rates:execute:request")

	return r.ratesRequest(ctx, client, body)
}

func (r *RatesRequest) ratesRequest(ctx context.Context, client *http.Client, body []byte) (schema.RemoteRatesResponse, error) {
	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.Rates)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return schema.RemoteRatesResponse{}, schema.NewConnectionError(err.Error())
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, transportErr := requesting.RequestErrors(client.Do(request))
	if transportErr != nil {
		return schema.RemoteRatesResponse{}, transportErr
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return schema.RemoteRatesResponse{}, schema.NewDecodeError(err.Error())
	}

	return schema.RemoteRatesResponse{
		StatusCode: response.StatusCode,
		Body:       passthroughBody(responseBody),
	}, nil
}

// passthroughBody keeps a JSON body as is and quotes anything else into a JSON string.
func passthroughBody(body []byte) json.RawMessage {
	if len(bytes.TrimSpace(body)) > 0 && json.Valid(body) {
		return body
	}

	quoted, _ := json.Marshal(string(body))

	return quoted
}
