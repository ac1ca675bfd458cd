package schema

import "fmt"

type TransportErrorCode string

const (
	TimeoutError    TransportErrorCode = "TIMEOUT_ERROR"
	ConnectionError TransportErrorCode = "CONNECTION_ERROR"
	DecodeError     TransportErrorCode = "DECODE_ERROR"
)

// TransportError is a failed exchange with the remote rates API: nothing usable came back.
type TransportError struct {
	Code    TransportErrorCode `json:"code"`
	Message string             `json:"message"`
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewTimeoutError(msg string) *TransportError {
	return &TransportError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) *TransportError {
	return &TransportError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewDecodeError(msg string) *TransportError {
	return &TransportError{
		Code:    DecodeError,
		Message: msg,
	}
}
