package interfaces

import (
	"context"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"github.com/rs/zerolog"
)

// WithGetRates forwards a validated payload to a remote rates API. A returned
// *schema.TransportError means nothing came back; any response that did come back,
// whatever its status, is returned as is.
type WithGetRates interface {
	GetRates(context.Context, schema.RatesRequestParams, *zerolog.Logger) (schema.RemoteRatesResponse, error)
}
