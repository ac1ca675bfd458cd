package quote

import (
	"encoding/json"
	"math"
	"strconv"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
)

// ToRemoteRequest maps a form submission onto the remote rates API schema.
// The unit name is not part of the remote schema.
func ToRemoteRequest(request booking.Request, unitTypeID int) schema.RemoteRatesRequest {
	return schema.RemoteRatesRequest{
		UnitTypeID: unitTypeID,
		Arrival:    booking.ISOToDMY(request.Arrival.String()),
		Departure:  booking.ISOToDMY(request.Departure.String()),
		Guests:     Guests(AgesToValues(request.Ages)),
	}
}

// FromParams maps an already validated proxy payload onto the remote rates API schema.
func FromParams(params schema.RatesRequestParams, unitTypeID int) schema.RemoteRatesRequest {
	return schema.RemoteRatesRequest{
		UnitTypeID: unitTypeID,
		Arrival:    params.Arrival,
		Departure:  params.Departure,
		Guests:     Guests(params.Ages),
	}
}

// Guests classifies every integer age by the adult threshold. Values that are not
// integers are dropped, so the result can be shorter than the declared occupants.
func Guests(ages []any) []schema.RemoteGuest {
	guests := []schema.RemoteGuest{}

	for _, value := range ages {
		age, ok := integerAge(value)
		if !ok {
			continue
		}

		group := schema.AgeGroupChild
		if booking.IsAdult(age) {
			group = schema.AgeGroupAdult
		}

		guests = append(guests, schema.RemoteGuest{AgeGroup: group})
	}

	return guests
}

func AgesToValues(ages []int) []any {
	values := make([]any, 0, len(ages))
	for _, age := range ages {
		values = append(values, age)
	}

	return values
}

func integerAge(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		age, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return int(age), true
	}

	return 0, false
}
