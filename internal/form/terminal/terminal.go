package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"bitbucket.org/crgw/rates-inquiry/internal/booking"
	"bitbucket.org/crgw/rates-inquiry/internal/form"
	"bitbucket.org/crgw/rates-inquiry/internal/quote"
	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Faint)
	rateColor    = color.New(color.FgYellow, color.Bold)
	statusColor  = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
)

// Renderer writes the results area and the notice banner to a terminal.
type Renderer struct {
	out io.Writer
	mu  sync.Mutex
}

func New(out io.Writer) *Renderer {
	return &Renderer{
		out: out,
	}
}

func (r *Renderer) ShowLoading(loading bool) {
	if !loading {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	labelColor.Fprintln(r.out, "Fetching rates...")
}

func (r *Renderer) Clear() {}

func (r *Renderer) RenderQuote(display quote.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch d := display.(type) {
	case quote.RateQuote:
		r.rateQuote(d)
	case quote.RawFallback:
		r.rawFallback(d)
	}
}

func (r *Renderer) RenderError(panel form.ErrorPanel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	errorColor.Fprintf(r.out, "%s: ", panel.Heading)
	fmt.Fprintln(r.out, panel.Message)
	if panel.Details != "" {
		labelColor.Fprintln(r.out, panel.Details)
	}
}

func (r *Renderer) ShowNotice(notice form.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notice.Kind == form.NoticeError {
		errorColor.Fprintln(r.out, notice.Message)
		return
	}

	successColor.Fprintln(r.out, notice.Message)
}

func (r *Renderer) ClearNotice() {}

// Observe prints the guest counters whenever the age rows change.
func (r *Renderer) Observe(snapshot booking.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "Adults: %d  Minors: %d", snapshot.Counters.Adults, snapshot.Counters.Minors)
	if len(snapshot.Counters.MinorAges) > 0 {
		fmt.Fprintf(r.out, "  (ages %s)", joinInts(snapshot.Counters.MinorAges))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) rateQuote(q quote.RateQuote) {
	headingColor.Fprintln(r.out, q.UnitName)
	r.detail("Check-in", q.ArrivalDisplay)
	r.detail("Check-out", q.DepartureDisplay)
	r.detail("Guests", GuestSummary(q.AdultCount, q.MinorCount))
	if q.MinorCount > 0 {
		r.detail("Children Ages", joinInts(q.MinorAges))
	}
	r.detail("Rooms", fmt.Sprint(q.Rooms))

	headingColor.Fprintln(r.out, "Rate Information")
	r.detail("Rate Type", q.RateDescription)
	r.rate("Daily Rate", q.DailyRate.Display)
	r.rate("Total Charge", q.TotalCharge.Display)
	if q.ExtrasCharge != nil {
		r.detail("Extras", q.ExtrasCharge.Display)
	}

	headingColor.Fprintln(r.out, "Booking Details")
	labelColor.Fprintf(r.out, "  %-14s ", "Status:")
	statusColor.Fprintln(r.out, q.Status)
	if q.BookingGroupID != "" {
		r.detail("Booking Group", q.BookingGroupID)
	}
	if q.RateCode != "" {
		r.detail("Rate Code", q.RateCode)
	}
}

func (r *Renderer) rawFallback(raw quote.RawFallback) {
	headingColor.Fprintln(r.out, raw.UnitName)
	r.detail("Date Range", raw.ArrivalDisplay+" - "+raw.DepartureDisplay)
	labelColor.Fprintln(r.out, "  Response:")
	fmt.Fprintln(r.out, raw.Pretty())
}

func (r *Renderer) detail(label string, value string) {
	labelColor.Fprintf(r.out, "  %-14s ", label+":")
	fmt.Fprintln(r.out, value)
}

func (r *Renderer) rate(label string, value string) {
	labelColor.Fprintf(r.out, "  %-14s ", label+":")
	rateColor.Fprintln(r.out, value)
}

// GuestSummary reads like "2 Adults, 1 Child".
func GuestSummary(adults int, minors int) string {
	summary := fmt.Sprintf("%d Adult", adults)
	if adults != 1 {
		summary += "s"
	}

	if minors > 0 {
		summary += fmt.Sprintf(", %d Child", minors)
		if minors != 1 {
			summary += "ren"
		}
	}

	return summary
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprint(value))
	}

	return strings.Join(parts, ", ")
}
