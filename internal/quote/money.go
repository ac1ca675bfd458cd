package quote

import (
	"fmt"

	"bitbucket.org/crgw/rates-inquiry/internal/schema"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCurrency = "NAD"
	NotAvailable    = "N/A"
)

type Money struct {
	Amount  schema.RoundedFloat `json:"amount"`
	Display string              `json:"display"`
}

// MoneyFormatter renders amounts in one fixed currency.
type MoneyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewMoneyFormatter(code string) (*MoneyFormatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}

	return &MoneyFormatter{
		unit:    unit,
		printer: message.NewPrinter(language.English),
	}, nil
}

func MustMoneyFormatter(code string) *MoneyFormatter {
	formatter, err := NewMoneyFormatter(code)
	if err != nil {
		panic(err)
	}

	return formatter
}

func (f *MoneyFormatter) Currency() string {
	return f.unit.String()
}

// Format renders zero as "N/A".
func (f *MoneyFormatter) Format(amount float64) string {
	if amount == 0 {
		return NotAvailable
	}

	return f.unit.String() + " " + f.printer.Sprintf("%.2f", amount)
}

func (f *MoneyFormatter) Money(amount float64) Money {
	return Money{
		Amount:  schema.RoundedFloat(amount),
		Display: f.Format(amount),
	}
}
