package errors

import "errors"

var (
	ErrorMissingParams = errors.New("validated params missing from context")
)
