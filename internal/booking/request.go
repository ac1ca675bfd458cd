package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request is one submission of the booking form.
type Request struct {
	UnitName  string             `json:"unitName"`
	Arrival   openapi_types.Date `json:"arrival"`
	Departure openapi_types.Date `json:"departure"`
	Occupants int                `json:"occupants"`
	Ages      []int              `json:"ages"`
}

// Nights is the number of started days between arrival and departure.
func (r Request) Nights() int {
	return Nights(r.Arrival, r.Departure)
}

func Nights(arrival openapi_types.Date, departure openapi_types.Date) int {
	if arrival.IsZero() || departure.IsZero() {
		return 0
	}

	return int(math.Ceil(departure.Sub(arrival.Time).Hours() / 24))
}

func ParseISODate(value string) (openapi_types.Date, error) {
	parsed, err := time.Parse(openapi_types.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return openapi_types.Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}

	return openapi_types.Date{Time: parsed}, nil
}

// ISOToDMY reorders YYYY-MM-DD into DD/MM/YYYY without validating the calendar date.
func ISOToDMY(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return value
	}

	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// DMYToISO reorders DD/MM/YYYY into YYYY-MM-DD.
func DMYToISO(value string) string {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return value
	}

	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// DisplayDate renders a date the way the results panel shows it, e.g. "4 Jan 2024".
func DisplayDate(date openapi_types.Date) string {
	if date.IsZero() {
		return ""
	}

	return date.Format("2 Jan 2006")
}
