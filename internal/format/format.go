// Package format renders numbers as locale- and currency-aware strings.
// Both the on-screen totals and the printed PDF go through the same
// Formatter, so the two always agree on displayed values.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tusfactus/factus/internal/currency"
)

var locales = map[string]language.Tag{
	"es": language.MustParse("es-ES"),
	"en": language.MustParse("en-US"),
	"ca": language.MustParse("ca-ES"),
}

// Formatter formats numbers for one language/currency pair. Methods are
// pure: the same value always yields the same string.
type Formatter struct {
	printer *message.Printer
	symbol  string
	prefix  bool
}

// New builds a Formatter for a language tag and currency code. Unknown
// languages fall back to Spanish, unknown currencies to the default.
func New(lang, code string) *Formatter {
	tag, ok := locales[lang]
	if !ok {
		tag = locales["es"]
	}
	cur := currency.Lookup(code)
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  cur.Symbol,
		// English locales place the symbol before the amount, the others after.
		prefix: lang == "en",
	}
}

// Amount renders a currency amount with exactly two fraction digits.
func (f *Formatter) Amount(v float64) string {
	if !isFinite(v) {
		v = 0
	}
	s := f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if f.prefix {
		return f.symbol + s
	}
	return s + " " + f.symbol
}

// Decimal renders a plain number with up to two fraction digits. Non-finite
// input renders as "0".
func (f *Formatter) Decimal(v float64) string {
	if !isFinite(v) {
		return "0"
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Percent renders Decimal suffixed with a percent sign.
func (f *Formatter) Percent(v float64) string {
	return f.Decimal(v) + "%"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
