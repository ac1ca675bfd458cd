package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/crgw/rates-inquiry/internal/journal"
	m "bitbucket.org/crgw/rates-inquiry/internal/platform/middleware"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"Unit Name": "Etosha Safari Lodge",
	"Arrival": "01/01/2024",
	"Departure": "04/01/2024",
	"Occupants": 2,
	"Ages": [30, 8]
}`

func TestParseRatesParams(t *testing.T) {
	t.Run("should accept a valid payload", func(t *testing.T) {
		params, err := m.ParseRatesParams([]byte(validPayload))

		require.Nil(t, err)
		assert.Equal(t, schema.RatesRequestParams{
			UnitName:  "Etosha Safari Lodge",
			Arrival:   "01/01/2024",
			Departure: "04/01/2024",
			Occupants: 2,
			Ages:      []any{json.Number("30"), json.Number("8")},
		}, params)
	})

	t.Run("should reject payloads by the first failing rule", func(t *testing.T) {
		tests := []struct {
			name            string
			body            string
			expectedMessage string
			expectedDetails string
		}{
			{
				name:            "malformed json",
				body:            `{"Unit Name": "Etosha",`,
				expectedMessage: m.MessageInvalidJSON,
				expectedDetails: "Syntax error: unexpected end of JSON input",
			},
			{
				name:            "empty body",
				body:            ``,
				expectedMessage: m.MessageInvalidJSON,
				expectedDetails: "Syntax error: empty body",
			},
			{
				name:            "malformed json wins over missing fields",
				body:            `{"Arrival": 01/01/2024}`,
				expectedMessage: m.MessageInvalidJSON,
			},
			{
				name:            "missing unit name",
				body:            `{"Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 2, "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Missing required field: Unit Name",
			},
			{
				name:            "empty unit name",
				body:            `{"Unit Name": "", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 2, "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Missing required field: Unit Name",
			},
			{
				name:            "null ages",
				body:            `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 2, "Ages": null}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Missing required field: Ages",
			},
			{
				name:            "not an object",
				body:            `[1, 2]`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Missing required field: Unit Name",
			},
			{
				name:            "missing wins over bad date",
				body:            `{"Unit Name": "Etosha", "Arrival": "2024-01-01", "Departure": "04/01/2024", "Occupants": 2}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Missing required field: Ages",
			},
			{
				name:            "iso arrival",
				body:            `{"Unit Name": "Etosha", "Arrival": "2024-01-01", "Departure": "04/01/2024", "Occupants": 2, "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Invalid Arrival date format. Expected DD/MM/YYYY",
			},
			{
				name:            "numeric departure",
				body:            `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": 4012024, "Occupants": 2, "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Invalid Departure date format. Expected DD/MM/YYYY",
			},
			{
				name:            "fractional occupants",
				body:            `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 2.5, "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Occupants must be an integer",
			},
			{
				name:            "string occupants",
				body:            `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": "2", "Ages": [30]}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Occupants must be an integer",
			},
			{
				name:            "ages object",
				body:            `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 2, "Ages": {"0": 30}}`,
				expectedMessage: m.MessageValidationFailed,
				expectedDetails: "Ages must be an array",
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := m.ParseRatesParams([]byte(test.body))

				require.NotNil(t, err)
				assert.Equal(t, test.expectedMessage, err.Message)
				if test.expectedDetails != "" {
					assert.Equal(t, test.expectedDetails, err.Details)
				}
			})
		}
	})

	t.Run("should keep non integer ages for the transformer to drop", func(t *testing.T) {
		body := `{"Unit Name": "Etosha", "Arrival": "01/01/2024", "Departure": "04/01/2024", "Occupants": 3, "Ages": [30, "eight", 4.5]}`

		params, err := m.ParseRatesParams([]byte(body))

		require.Nil(t, err)
		assert.Equal(t, []any{json.Number("30"), "eight", json.Number("4.5")}, params.Ages)
	})
}

type recordingSink struct {
	lines []string
}

func (s *recordingSink) Append(_ context.Context, entry journal.Entry) error {
	s.lines = append(s.lines, string(entry.Level)+" "+entry.Message)
	return nil
}

func TestPrepareRatesParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	newRouter := func(sink journal.Sink) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("logger", &log)
		})

		router.POST("/api/rates", m.PrepareRatesParams(journal.New(&log, sink)), func(c *gin.Context) {
			params := c.MustGet(m.ParamsKey).(*schema.RatesRequestParams)
			c.JSON(http.StatusOK, gin.H{"unit": params.UnitName})
		})

		return router
	}

	t.Run("should hand validated params to the next handler", func(t *testing.T) {
		sink := &recordingSink{}
		response := httptest.NewRecorder()

		request, err := http.NewRequest(http.MethodPost, "/api/rates", strings.NewReader(validPayload))
		require.NoError(t, err)

		newRouter(sink).ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"unit":"Etosha Safari Lodge"}`, response.Body.String())
		assert.Equal(t, []string{
			"INFO New API request received",
			"DEBUG Raw input: " + validPayload,
			"INFO Payload validated successfully",
		}, sink.lines)
	})

	t.Run("should answer 400 with the failure envelope", func(t *testing.T) {
		sink := &recordingSink{}
		response := httptest.NewRecorder()

		request, err := http.NewRequest(http.MethodPost, "/api/rates", strings.NewReader(`{"Unit Name": "Etosha"}`))
		require.NoError(t, err)

		newRouter(sink).ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.JSONEq(t, `{"success":false,"error":"Validation failed","details":"Missing required field: Arrival"}`, response.Body.String())
		assert.Contains(t, sink.lines, "ERROR Validation failed: Missing required field: Arrival")
	})

	t.Run("should journal malformed json", func(t *testing.T) {
		sink := &recordingSink{}
		response := httptest.NewRecorder()

		request, err := http.NewRequest(http.MethodPost, "/api/rates", strings.NewReader(`{`))
		require.NoError(t, err)

		newRouter(sink).ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), `"error":"Invalid JSON format"`)
		assert.Len(t, sink.lines, 3)
		assert.True(t, strings.HasPrefix(sink.lines[2], "ERROR Invalid JSON: "))
	})

	t.Run("should refuse an oversized body", func(t *testing.T) {
		sink := &recordingSink{}
		response := httptest.NewRecorder()
		body := `{"Unit Name": "` + strings.Repeat("a", m.MaxBodyBytes) + `"}`

		request, err := http.NewRequest(http.MethodPost, "/api/rates", strings.NewReader(body))
		require.NoError(t, err)

		newRouter(sink).ServeHTTP(response, request)

		assert.Equal(t, http.StatusRequestEntityTooLarge, response.Code)
		assert.Contains(t, response.Body.String(), `"error":"Request body too large"`)
		assert.Contains(t, sink.lines, fmt.Sprintf("ERROR Request body exceeds %d bytes", m.MaxBodyBytes))
	})
}
