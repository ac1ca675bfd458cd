package requesting

import (
	"errors"
	"net/http"
	"os"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
)

func IsValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors classifies a failed round trip. Any response that arrived is passed
// through whatever its status code, the caller decides what a non-2xx means.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.TransportError) {
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, schema.NewTimeoutError(err.Error())
		}

		return nil, schema.NewConnectionError(err.Error())
	}

	return response, nil
}
