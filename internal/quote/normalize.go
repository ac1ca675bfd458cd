package quote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Keys read from the remote rates response.
const (
	keyResponse        = "Response"
	keyLocationID      = "Location ID"
	keyTotalCharge     = "Total Charge"
	keyExtrasCharge    = "Extras Charge"
	keyEffectiveRate   = "Effective Average Daily Rate"
	keyRooms           = "Rooms"
	keyRateDescription = "Special Rate Description"
	keyBookingGroupID  = "Booking Group ID"
	keyRateCode        = "Special Rate Code"
)

const (
	DefaultRateDescription = "Standard Rate"
	StatusAvailable        = "Available"
)

// Context is what the form knew when it submitted; guest demographics come from here.
type Context struct {
	UnitName  string
	Arrival   openapi_types.Date
	Departure openapi_types.Date
	Ages      []int
}

// Display is either a RateQuote or a RawFallback.
type Display interface {
	isDisplay()
}

type RateQuote struct {
	UnitName         string `json:"unitName"`
	ArrivalDisplay   string `json:"arrivalDisplay"`
	DepartureDisplay string `json:"departureDisplay"`
	Nights           int    `json:"nights"`
	AdultCount       int    `json:"adultCount"`
	MinorCount       int    `json:"minorCount"`
	MinorAges        []int  `json:"minorAges"`
	Rooms            int    `json:"rooms"`
	RateDescription  string `json:"rateDescription"`
	DailyRate        Money  `json:"dailyRate"`
	TotalCharge      Money  `json:"totalCharge"`
	ExtrasCharge     *Money `json:"extrasCharge,omitempty"`
	BookingGroupID   string `json:"bookingGroupId,omitempty"`
	RateCode         string `json:"rateCode,omitempty"`
	Status           string `json:"status"`
}

// RawFallback carries a remote body that did not look like a quote.
type RawFallback struct {
	UnitName         string          `json:"unitName"`
	ArrivalDisplay   string          `json:"arrivalDisplay"`
	DepartureDisplay string          `json:"departureDisplay"`
	Body             json.RawMessage `json:"body"`
}

func (RateQuote) isDisplay()   {}
func (RawFallback) isDisplay() {}

// Pretty returns the body indented for display, or verbatim when it is not JSON.
func (r RawFallback) Pretty() string {
	var out bytes.Buffer
	if err := json.Indent(&out, r.Body, "", "  "); err != nil {
		return string(r.Body)
	}

	return out.String()
}

// Normalizer turns remote response bodies into display models.
type Normalizer struct {
	money *MoneyFormatter
}

func NewNormalizer(money *MoneyFormatter) *Normalizer {
	return &Normalizer{
		money: money,
	}
}

// ToRateQuote never fails: an unrecognised body degrades to a RawFallback.
func (n *Normalizer) ToRateQuote(body json.RawMessage, c Context) Display {
	fields, ok := detectStructured(body)
	if !ok {
		return RawFallback{
			UnitName:         c.UnitName,
			ArrivalDisplay:   booking.DisplayDate(c.Arrival),
			DepartureDisplay: booking.DisplayDate(c.Departure),
			Body:             body,
		}
	}

	totalCharge := number(fields[keyTotalCharge])
	extrasCharge := number(fields[keyExtrasCharge])
	nights := booking.Nights(c.Arrival, c.Departure)

	dailyRate := number(fields[keyEffectiveRate])
	if dailyRate == 0 {
		dailyRate = DailyRate(totalCharge, nights)
	}

	rateDescription := DefaultRateDescription
	if truthy(fields[keyRateDescription]) {
		rateDescription = text(fields[keyRateDescription])
	}

	counters := booking.CountGuests(c.Ages)

	unitName := c.UnitName
	if unitName == "" {
		unitName = "Accommodation"
	}

	quote := RateQuote{
		UnitName:         unitName,
		ArrivalDisplay:   booking.DisplayDate(c.Arrival),
		DepartureDisplay: booking.DisplayDate(c.Departure),
		Nights:           nights,
		AdultCount:       counters.Adults,
		MinorCount:       counters.Minors,
		MinorAges:        counters.MinorAges,
		Rooms:            int(number(fields[keyRooms])),
		RateDescription:  rateDescription,
		DailyRate:        n.money.Money(dailyRate),
		TotalCharge:      n.money.Money(totalCharge),
		Status:           StatusAvailable,
	}

	if extrasCharge > 0 {
		extras := n.money.Money(extrasCharge)
		quote.ExtrasCharge = &extras
	}

	if truthy(fields[keyBookingGroupID]) {
		quote.BookingGroupID = text(fields[keyBookingGroupID])
	}

	if truthy(fields[keyRateCode]) {
		quote.RateCode = text(fields[keyRateCode])
	}

	return quote
}

// DailyRate spreads the total over the nights; zero when either is not positive.
func DailyRate(totalCharge float64, nights int) float64 {
	if nights <= 0 || totalCharge <= 0 {
		return 0
	}

	return totalCharge / float64(nights)
}

// detectStructured unwraps an optional "Response" envelope and reports whether the
// result carries a location id or a total charge.
func detectStructured(body json.RawMessage) (map[string]any, bool) {
	fields, ok := decodeObject(body)
	if !ok {
		return nil, false
	}

	if wrapped, present := fields[keyResponse]; present && truthy(wrapped) {
		inner, isObject := wrapped.(map[string]any)
		if !isObject {
			return nil, false
		}
		fields = inner
	}

	if !truthy(fields[keyLocationID]) && !truthy(fields[keyTotalCharge]) {
		return nil, false
	}

	return fields, true
}

func decodeObject(body json.RawMessage) (map[string]any, bool) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}

	return fields, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	}

	return true
}

func number(value any) float64 {
	switch v := value.(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}

	return 0
}

func text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}

	return fmt.Sprint(value)
}
