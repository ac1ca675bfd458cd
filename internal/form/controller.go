package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	"bitbucket.org/crgw/rates-inquiry/internal/quote"
	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/rs/zerolog"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

type Options struct {
	Client     RatesClient
	Renderer   Renderer
	Notices    *Notices
	Normalizer *quote.Normalizer
	// OnState, when set, sees every state transition.
	OnState func(State)
	Log     *zerolog.Logger
}

// Controller drives one booking form: field values, the guest age rows and the
// submission state machine. Success and Failed accept a new submission like Idle.
type Controller struct {
	client     RatesClient
	renderer   Renderer
	notices    *Notices
	normalizer *quote.Normalizer
	onState    func(State)
	log        *zerolog.Logger

	ages      *booking.AgeList
	unitName  string
	arrival   string
	departure string
	state     State
	mu        sync.Mutex
}

func NewController(options Options) *Controller {
	log := options.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	normalizer := options.Normalizer
	if normalizer == nil {
		normalizer = quote.NewNormalizer(quote.MustMoneyFormatter(quote.DefaultCurrency))
	}

	ages := booking.NewAgeList()

	return &Controller{
		client:     options.Client,
		renderer:   options.Renderer,
		notices:    options.Notices,
		normalizer: normalizer,
		onState:    options.OnState,
		log:        log,
		ages:       ages,
	}
}

// Ages exposes the age rows for observers and per-row edits.
func (c *Controller) Ages() *booking.AgeList {
	return c.ages
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) SetUnitName(value string) {
	c.mu.Lock()
	c.unitName = value
	c.mu.Unlock()
}

// SetArrival takes the date input value, YYYY-MM-DD.
func (c *Controller) SetArrival(value string) {
	c.mu.Lock()
	c.arrival = value
	c.mu.Unlock()
}

// SetDeparture takes the date input value, YYYY-MM-DD.
func (c *Controller) SetDeparture(value string) {
	c.mu.Lock()
	c.departure = value
	c.mu.Unlock()
}

// SetOccupants stores the declared head count and grows or trims the age rows to it.
func (c *Controller) SetOccupants(n int) {
	c.ages.SetOccupantCount(n)
}

// Occupants is the declared head count, kept by the age list.
func (c *Controller) Occupants() int {
	return c.ages.Occupants()
}

// AddAge appends a row and sets the head count to the row count.
func (c *Controller) AddAge() {
	c.ages.AddEntry()
}

// RemoveAge drops a row. Removing the last row is refused with a notice.
func (c *Controller) RemoveAge(index int) error {
	if err := c.ages.RemoveEntry(index); err != nil {
		if errors.Is(err, booking.ErrMinimumGuests) {
			c.notices.Error(booking.MinimumGuestsMessage)
		}
		return err
	}

	return nil
}

func (c *Controller) UpdateAge(index int, value string) error {
	return c.ages.UpdateEntry(index, value)
}

// SetAges replaces every row at once and leaves the declared head count alone.
func (c *Controller) SetAges(values []string) {
	c.ages.ReplaceEntries(values)
}

// Submit validates the form and, when it passes, makes exactly one call to the proxy.
// The returned display is nil on any failure.
func (c *Controller) Submit(ctx context.Context) (quote.Display, error) {
	c.mu.Lock()
	if c.state == StateValidating || c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.state = StateValidating
	c.mu.Unlock()
	c.notifyState(StateValidating)

	c.mu.Lock()
	request, err := c.validate()
	if err != nil {
		c.state = StateIdle
		c.mu.Unlock()
		c.notifyState(StateIdle)

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			c.notices.Error(validationErr.Message)
		}

		return nil, err
	}

	c.state = StateSubmitting
	c.mu.Unlock()
	c.notifyState(StateSubmitting)

	c.renderer.Clear()
	c.renderer.ShowLoading(true)

	envelope, err := c.client.GetRates(ctx, toParams(request))

	c.renderer.ShowLoading(false)

	if err != nil {
		transportErr := &TransportError{Err: err}
		c.log.Warn().Err(err).Msg("Rates request failed")
		c.renderer.RenderError(transportErr.Panel())
		c.finish(StateFailed)

		return nil, transportErr
	}

	if !envelope.Success && envelope.Error == schema.MessageRemoteFailed {
		// the proxy could not reach the remote API: a transport failure one hop further
		transportErr := &TransportError{Err: errors.New(joinDetails(envelope.Error, envelope.Details))}
		c.log.Warn().Str("details", envelope.Details).Msg("Remote API unreachable")
		c.renderer.RenderError(transportErr.Panel())
		c.finish(StateFailed)

		return nil, transportErr
	}

	if !envelope.Success {
		remoteErr := &RemoteError{
			Message: envelope.Error,
			Details: envelope.Details,
		}
		c.log.Info().Str("error", envelope.Error).Str("details", envelope.Details).Msg("Rates request rejected")
		c.renderer.RenderError(remoteErr.Panel())
		c.finish(StateFailed)

		return nil, remoteErr
	}

	display := c.normalizer.ToRateQuote(envelope.Data, quote.Context{
		UnitName:  request.UnitName,
		Arrival:   request.Arrival,
		Departure: request.Departure,
		Ages:      request.Ages,
	})

	c.renderer.RenderQuote(display)
	c.notices.Success(MessageRatesRetrieved)
	c.finish(StateSuccess)

	return display, nil
}

func (c *Controller) finish(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	c.notifyState(state)
}

// notifyState must be called without c.mu held; the hook may call back into the controller.
func (c *Controller) notifyState(state State) {
	if c.onState != nil {
		c.onState(state)
	}
}

// validate expects c.mu to be held.
func (c *Controller) validate() (booking.Request, error) {
	unitName := strings.TrimSpace(c.unitName)
	occupants := c.ages.Occupants()

	missing := &ValidationError{Err: ErrMissingField, Message: MessageMissingField}
	if unitName == "" || c.arrival == "" || c.departure == "" || occupants == 0 {
		return booking.Request{}, missing
	}

	arrival, err := booking.ParseISODate(c.arrival)
	if err != nil {
		return booking.Request{}, missing
	}

	departure, err := booking.ParseISODate(c.departure)
	if err != nil {
		return booking.Request{}, missing
	}

	if !departure.After(arrival.Time) {
		return booking.Request{}, &ValidationError{Err: ErrInvalidDateRange, Message: MessageInvalidRange}
	}

	ages := c.ages.Ages()
	if len(ages) != occupants {
		return booking.Request{}, guestCountMismatch(occupants)
	}

	for _, age := range ages {
		if age < 0 || age > booking.MaxAge {
			return booking.Request{}, &ValidationError{Err: ErrAgeOutOfRange, Message: MessageAgeOutOfRange}
		}
	}

	return booking.Request{
		UnitName:  unitName,
		Arrival:   arrival,
		Departure: departure,
		Occupants: occupants,
		Ages:      ages,
	}, nil
}

func toParams(request booking.Request) schema.RatesRequestParams {
	return schema.RatesRequestParams{
		UnitName:  request.UnitName,
		Arrival:   booking.ISOToDMY(request.Arrival.Format(openapi_types.DateFormat)),
		Departure: booking.ISOToDMY(request.Departure.Format(openapi_types.DateFormat)),
		Occupants: request.Occupants,
		Ages:      quote.AgesToValues(request.Ages),
	}
}

func joinDetails(message string, details string) string {
	if details == "" {
		return message
	}

	return message + ": " + details
}
