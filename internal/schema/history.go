package schema

import (
	"net/http"
	"time"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

type RemoteRequestName string

const (
	Rates RemoteRequestName = "rates"
)

// Exchange is one finished outbound call, as seen on the wire.
type Exchange struct {
	Name            RemoteRequestName `json:"name"`
	StartDateTime   time.Time         `json:"startDateTime"`
	Duration        time.Duration     `json:"duration"`
	Method          string            `json:"method"`
	Url             string            `json:"url"`
	StatusCode      int               `json:"statusCode"`
	RequestBody     string            `json:"requestBody"`
	RequestHeaders  http.Header       `json:"requestHeaders"`
	ResponseBody    string            `json:"responseBody"`
	ResponseHeaders http.Header       `json:"responseHeaders"`
}
