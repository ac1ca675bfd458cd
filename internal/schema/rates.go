package schema

import "encoding/json"

// Inbound payload keys of the rates endpoint, in validation order.
const (
	FieldUnitName  = "Unit Name"
	FieldArrival   = "Arrival"
	FieldDeparture = "Departure"
	FieldOccupants = "Occupants"
	FieldAges      = "Ages"
)

// MessageRemoteFailed is the envelope error of a failed call to the remote rates API.
const MessageRemoteFailed = "Failed to get rates from remote API"

var RequiredFields = []string{
	FieldUnitName,
	FieldArrival,
	FieldDeparture,
	FieldOccupants,
	FieldAges,
}

// RatesRequestParams is the validated inbound payload. Dates are DD/MM/YYYY.
type RatesRequestParams struct {
	UnitName  string `json:"Unit Name"`
	Arrival   string `json:"Arrival"`
	Departure string `json:"Departure"`
	Occupants int    `json:"Occupants"`
	Ages      []any  `json:"Ages"`
}

type AgeGroup string

const (
	AgeGroupAdult AgeGroup = "Adult"
	AgeGroupChild AgeGroup = "Child"
)

type RemoteGuest struct {
	AgeGroup AgeGroup `json:"Age Group"`
}

// RemoteRatesRequest is the body posted to the remote rates API.
type RemoteRatesRequest struct {
	UnitTypeID int           `json:"Unit Type ID"`
	Arrival    string        `json:"Arrival"`
	Departure  string        `json:"Departure"`
	Guests     []RemoteGuest `json:"Guests"`
}

// RemoteRatesResponse is the raw outcome of a completed remote call.
type RemoteRatesResponse struct {
	StatusCode int
	Body       json.RawMessage
}

type RatesResponse struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	HttpCode int             `json:"http_code"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Envelope reads either response shape of the rates endpoint.
type Envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	HttpCode int             `json:"http_code,omitempty"`
	Error    string          `json:"error,omitempty"`
	Details  string          `json:"details,omitempty"`
}
