// Package format renders monetary and percentage values for display.
package format

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for absent or non-numeric values, never "0".
const Placeholder = "—"

// Formatter renders amounts in a fixed currency using the configured
// locale, with a plain "$x.xx" fallback when locale rendering fails.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    currency.USD,
	}
}

func (f *Formatter) Currency(amount decimal.Decimal) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "$" + amount.StringFixed(2)
		}
	}()
	value, _ := amount.Float64()
	out = f.printer.Sprint(currency.Symbol(f.unit.Amount(value)))
	if out == "" {
		out = "$" + amount.StringFixed(2)
	}
	return out
}

// CurrencyPtr renders a possibly absent amount.
func (f *Formatter) CurrencyPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return Placeholder
	}
	return f.Currency(*amount)
}

// Percent renders a percentage with one decimal and no unit; the caller
// appends "%" where wanted.
func Percent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Placeholder
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func PercentPtr(value *float64) string {
	if value == nil {
		return Placeholder
	}
	return Percent(*value)
}
