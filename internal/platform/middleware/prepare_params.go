package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

const (
	ParamsKey string = "params"
)

const (
	MessageInvalidJSON      = "Invalid JSON format"
	MessageValidationFailed = "Validation failed"
	MessageBodyTooLarge     = "Request body too large"
)

// MaxBodyBytes caps the inbound payload.
const MaxBodyBytes = 16 << 10

var dmyDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// RequestFormatError is a rejected inbound payload: always answered with 400.
type RequestFormatError struct {
	Message string
	Details string
}

func (e *RequestFormatError) Error() string {
	return e.Message + ": " + e.Details
}

func validationFailed(format string, args ...any) *RequestFormatError {
	return &RequestFormatError{
		Message: MessageValidationFailed,
		Details: fmt.Sprintf(format, args...),
	}
}

// PrepareRatesParams validates the body and stores *schema.RatesRequestParams under ParamsKey.
func PrepareRatesParams(j *journal.Journal) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		j.Info(ctx.Request.Context(), "New API request received")

		body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				j.Error(ctx.Request.Context(), fmt.Sprintf("Request body exceeds %d bytes", MaxBodyBytes))
				responding.HandleError(ctx, http.StatusRequestEntityTooLarge, MessageBodyTooLarge, err)
				return
			}

			responding.HandleError(ctx, http.StatusBadRequest, MessageInvalidJSON, err)
			return
		}

		j.Debug(ctx.Request.Context(), "Raw input: "+string(body))

		params, formatErr := ParseRatesParams(body)
		if formatErr != nil {
			if formatErr.Message == MessageInvalidJSON {
				j.Error(ctx.Request.Context(), "Invalid JSON: "+formatErr.Details)
			} else {
				j.Error(ctx.Request.Context(), "Validation failed: "+formatErr.Details)
			}

			responding.HandleError(ctx, http.StatusBadRequest, formatErr.Message, errors.New(formatErr.Details))
			return
		}

		j.Info(ctx.Request.Context(), "Payload validated successfully")

		ctx.Set(ParamsKey, &params)
	}
}

// ParseRatesParams applies the payload rules in order; the first failing rule wins.
func ParseRatesParams(body []byte) (schema.RatesRequestParams, *RequestFormatError) {
	params := schema.RatesRequestParams{}

	if !json.Valid(body) {
		return params, &RequestFormatError{
			Message: MessageInvalidJSON,
			Details: invalidJSONDetails(body),
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		// valid JSON that is not an object carries none of the fields
		fields = map[string]json.RawMessage{}
	}

	for _, name := range schema.RequiredFields {
		if isMissing(fields[name]) {
			return params, validationFailed("Missing required field: %s", name)
		}
	}

	arrival, ok := dateField(fields[schema.FieldArrival])
	if !ok {
		return params, validationFailed("Invalid Arrival date format. Expected DD/MM/YYYY")
	}

	departure, ok := dateField(fields[schema.FieldDeparture])
	if !ok {
		return params, validationFailed("Invalid Departure date format. Expected DD/MM/YYYY")
	}

	occupants, err := strconv.Atoi(strings.TrimSpace(string(fields[schema.FieldOccupants])))
	if err != nil {
		return params, validationFailed("Occupants must be an integer")
	}

	ages, ok := arrayField(fields[schema.FieldAges])
	if !ok {
		return params, validationFailed("Ages must be an array")
	}

	params.UnitName = stringValue(fields[schema.FieldUnitName])
	params.Arrival = arrival
	params.Departure = departure
	params.Occupants = occupants
	params.Ages = ages

	return params, nil
}

func invalidJSONDetails(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "Syntax error: empty body"
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return "Syntax error: " + err.Error()
	}

	return "Syntax error"
}

func isMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

func dateField(raw json.RawMessage) (string, bool) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	return value, dmyDate.MatchString(value)
}

func arrayField(raw json.RawMessage) ([]any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var values []any
	if err := decoder.Decode(&values); err != nil {
		return nil, false
	}

	return values, true
}

func stringValue(raw json.RawMessage) string {
	var value string
	if err := json.Unmarshal(raw, &value); err == nil {
		return value
	}

	return string(bytes.TrimSpace(raw))
}
