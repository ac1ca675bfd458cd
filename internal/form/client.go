package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/requesting"
	"github.com/rs/zerolog"
)

const DefaultProxyTimeout = 35 * time.Second

// RatesClient posts the form payload to the rates proxy and returns its envelope.
// An error is returned only when no envelope could be read.
type RatesClient interface {
	GetRates(ctx context.Context, params schema.RatesRequestParams) (schema.Envelope, error)
}

type HTTPRatesClient struct {
	url    string
	client *http.Client
}

func NewRatesClient(url string, timeout time.Duration, log *zerolog.Logger) *HTTPRatesClient {
	if timeout <= 0 {
		timeout = DefaultProxyTimeout
	}

	return &HTTPRatesClient{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			Transport: &requesting.InterceptorTransport{
				Middlewares: []requesting.TransportMiddleware{
					requesting.NewLoggingTransportMiddleware(log, "rates-proxy"),
				},
			},
		},
	}
}

func (c *HTTPRatesClient) GetRates(ctx context.Context, params schema.RatesRequestParams) (schema.Envelope, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return schema.Envelope{}, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return schema.Envelope{}, err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, transportErr := requesting.RequestErrors(c.client.Do(request))
	if transportErr != nil {
		return schema.Envelope{}, transportErr
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return schema.Envelope{}, schema.NewDecodeError(err.Error())
	}

	var envelope schema.Envelope
	if err := json.Unmarshal(responseBody, &envelope); err != nil {
		return schema.Envelope{}, schema.NewDecodeError(fmt.Sprintf("unexpected response (HTTP %d): %s", response.StatusCode, err))
	}

	return envelope, nil
}
