package form

import (
	"errors"
	"fmt"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
)

var (
	ErrClientValidation   = errors.New("client validation failed")
	ErrMissingField       = fmt.Errorf("%w: required field missing", ErrClientValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: departure must be after arrival", ErrClientValidation)
	ErrGuestCountMismatch = fmt.Errorf("%w: guest ages do not match occupants", ErrClientValidation)
	ErrAgeOutOfRange      = fmt.Errorf("%w: guest age out of range", ErrClientValidation)
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

const (
	MessageMissingField   = "Please fill in all required fields"
	MessageInvalidRange   = "Departure date must be after arrival date"
	MessageAgeOutOfRange  = "Guest ages must be between 0 and 120"
	MessageRatesRetrieved = "✓ Rates retrieved successfully!"
	MessageCheckAPI       = "Please check if the API is running."
)

// ValidationError blocks a submission before any network call. Message is what the
// user sees.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func guestCountMismatch(occupants int) *ValidationError {
	return &ValidationError{
		Err:     ErrGuestCountMismatch,
		Message: fmt.Sprintf("Please add ages for all %d guests", occupants),
	}
}

// RemoteError is a failure the proxy reported in its envelope.
type RemoteError struct {
	Message string
	Details string
}

func (e *RemoteError) Error() string {
	if e.Details == "" {
		return "remote error: " + e.Message
	}

	return fmt.Sprintf("remote error: %s: %s", e.Message, e.Details)
}

func (e *RemoteError) Panel() ErrorPanel {
	return ErrorPanel{
		Kind:    PanelRemote,
		Heading: "Error",
		Message: e.Message,
		Details: e.Details,
	}
}

// TransportError means no usable envelope came back: the proxy was unreachable,
// timed out or answered with something that is not an envelope.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Panel() ErrorPanel {
	message := e.Err.Error()

	var classified *schema.TransportError
	if errors.As(e.Err, &classified) {
		message = classified.Message
	}

	return ErrorPanel{
		Kind:    PanelTransport,
		Heading: "Connection Error",
		Message: message,
		Details: MessageCheckAPI,
	}
}
