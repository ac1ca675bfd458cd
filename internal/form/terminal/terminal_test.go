package terminal_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	"bitbucket.org/crgw/rates-inquiry/internal/form"
	"bitbucket.org/crgw/rates-inquiry/internal/form/terminal"
	"bitbucket.org/crgw/rates-inquiry/internal/quote"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestGuestSummary(t *testing.T) {
	tests := []struct {
		adults   int
		minors   int
		expected string
	}{
		{1, 0, "1 Adult"},
		{2, 0, "2 Adults"},
		{0, 1, "0 Adults, 1 Child"},
		{2, 3, "2 Adults, 3 Children"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, terminal.GuestSummary(test.adults, test.minors))
		})
	}
}

func TestRenderer(t *testing.T) {
	color.NoColor = true

	t.Run("should render a structured quote", func(t *testing.T) {
		out := &bytes.Buffer{}
		money := quote.MustMoneyFormatter("NAD")
		extras := money.Money(50)

		terminal.New(out).RenderQuote(quote.RateQuote{
			UnitName:         "Etosha Safari Lodge",
			ArrivalDisplay:   "1 Jan 2024",
			DepartureDisplay: "4 Jan 2024",
			Nights:           3,
			AdultCount:       2,
			MinorCount:       1,
			MinorAges:        []int{8},
			Rooms:            1,
			RateDescription:  quote.DefaultRateDescription,
			DailyRate:        money.Money(100),
			TotalCharge:      money.Money(300),
			ExtrasCharge:     &extras,
			BookingGroupID:   "BG-1",
			Status:           quote.StatusAvailable,
		})

		rendered := out.String()
		assert.Contains(t, rendered, "Etosha Safari Lodge")
		assert.Contains(t, rendered, "2 Adults, 1 Child")
		assert.Contains(t, rendered, "Children Ages:")
		assert.Contains(t, rendered, "Standard Rate")
		assert.Contains(t, rendered, "Available")
		assert.Contains(t, rendered, "BG-1")
		assert.NotContains(t, rendered, "Rate Code:")
	})

	t.Run("should render the raw body of a fallback", func(t *testing.T) {
		out := &bytes.Buffer{}

		terminal.New(out).RenderQuote(quote.RawFallback{
			UnitName:         "Etosha",
			ArrivalDisplay:   "1 Jan 2024",
			DepartureDisplay: "4 Jan 2024",
			Body:             json.RawMessage(`{"message":"Unit not found"}`),
		})

		assert.Contains(t, out.String(), "1 Jan 2024 - 4 Jan 2024")
		assert.Contains(t, out.String(), `"message": "Unit not found"`)
	})

	t.Run("should render both error templates", func(t *testing.T) {
		out := &bytes.Buffer{}
		renderer := terminal.New(out)

		renderer.RenderError((&form.RemoteError{Message: "Validation failed", Details: "Missing required field: Ages"}).Panel())
		renderer.RenderError((&form.TransportError{Err: assert.AnError}).Panel())

		assert.Contains(t, out.String(), "Error: Validation failed\nMissing required field: Ages\n")
		assert.Contains(t, out.String(), "Connection Error: "+assert.AnError.Error()+"\n"+form.MessageCheckAPI)
	})

	t.Run("should print counters on age changes", func(t *testing.T) {
		out := &bytes.Buffer{}
		renderer := terminal.New(out)

		ages := booking.NewAgeList()
		ages.Subscribe(renderer.Observe)
		ages.AddEntry()
		_ = ages.UpdateEntry(1, "6")

		assert.Contains(t, out.String(), "Adults: 1  Minors: 1  (ages 6)")
	})
}
