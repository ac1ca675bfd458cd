package requesting

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

type LoggingTransportMiddleware struct {
	Transport   http.RoundTripper
	destination string
	log         *zerolog.Logger
}

func NewLoggingTransportMiddleware(log *zerolog.Logger, destination string) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:         log,
			destination: destination,
			Transport:   rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("destination", t.destination).
		Str("method", req.Method).
		Str("url", req.URL.String())

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error()).Int("code", 0)
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

type ExchangeRecorder interface {
	RecordExchange(exchange schema.Exchange)
}

// BucketTransportMiddleware hands a copy of every finished exchange to the recorder.
// Bodies are buffered and restored so the caller can still read them.
type BucketTransportMiddleware struct {
	Transport http.RoundTripper
	Recorder  ExchangeRecorder
}

func NewBucketTransportMiddleware(recorder ExchangeRecorder) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &BucketTransportMiddleware{
			Transport: rt,
			Recorder:  recorder,
		}
	}
}

func (b *BucketTransportMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	startTime := time.Now()

	requestType, ok := request.Context().Value(schema.RequestingTypeKey).(schema.RemoteRequestName)
	if !ok {
		requestType = "unknown"
	}

	var requestBytes []byte
	if request.Body != nil {
		requestBytes, _ = io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewBuffer(requestBytes))
	}

	exchange := schema.Exchange{
		Name:            requestType,
		StartDateTime:   startTime,
		Method:          request.Method,
		Url:             request.URL.String(),
		RequestBody:     string(requestBytes),
		RequestHeaders:  request.Header.Clone(),
		ResponseHeaders: make(http.Header),
	}

	defer func() {
		exchange.Duration = time.Since(startTime)
		b.Recorder.RecordExchange(exchange)
	}()

	response, err := b.Transport.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	responseBytes, err := io.ReadAll(response.Body)
	response.Body.Close()
	response.Body = io.NopCloser(bytes.NewBuffer(responseBytes))
	if err != nil {
		return nil, err
	}

	exchange.StatusCode = response.StatusCode
	exchange.ResponseBody = string(responseBytes)
	exchange.ResponseHeaders = response.Header.Clone()

	return response, nil
}
