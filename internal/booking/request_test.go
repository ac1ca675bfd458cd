package booking_test

import (
	"testing"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDates(t *testing.T) {
	t.Run("should reorder ISO dates and back", func(t *testing.T) {
		for _, iso := range []string{"2024-01-01", "2024-02-29", "1999-12-31"} {
			dmy := booking.ISOToDMY(iso)

			assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, dmy)
			assert.Equal(t, iso, booking.DMYToISO(dmy))
		}

		assert.Equal(t, "04/01/2024", booking.ISOToDMY("2024-01-04"))
	})

	t.Run("should leave unrecognised values untouched", func(t *testing.T) {
		assert.Equal(t, "tomorrow", booking.ISOToDMY("tomorrow"))
		assert.Equal(t, "2024/01", booking.DMYToISO("2024/01"))
	})

	t.Run("should count nights", func(t *testing.T) {
		arrival, err := booking.ParseISODate("2024-01-01")
		require.NoError(t, err)
		departure, err := booking.ParseISODate("2024-01-04")
		require.NoError(t, err)

		assert.Equal(t, 3, booking.Nights(arrival, departure))
		assert.Equal(t, -3, booking.Nights(departure, arrival))
		assert.Equal(t, 3, booking.Request{Arrival: arrival, Departure: departure}.Nights())
	})

	t.Run("should display dates", func(t *testing.T) {
		date, err := booking.ParseISODate("2024-01-04")
		require.NoError(t, err)

		assert.Equal(t, "4 Jan 2024", booking.DisplayDate(date))
	})

	t.Run("should fail on malformed ISO dates", func(t *testing.T) {
		_, err := booking.ParseISODate("04/01/2024")

		assert.Error(t, err)
	})
}
