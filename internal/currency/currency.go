// Package currency enumerates the closed set of supported currencies. The
// set only parameterizes display formatting; it is never validated against
// a party's country.
package currency

// Currency pairs an ISO code with its display symbol and selector label.
type Currency struct {
	Code   string
	Symbol string
	Label  string
}

const Default = "EUR"

// Supported lists every accepted currency, in selector order.
var Supported = []Currency{
	{Code: "EUR", Symbol: "€", Label: "EUR €"},
	{Code: "USD", Symbol: "$", Label: "USD $"},
	{Code: "GBP", Symbol: "£", Label: "GBP £"},
	{Code: "JPY", Symbol: "¥", Label: "JPY ¥"},
	{Code: "CHF", Symbol: "CHF", Label: "CHF"},
	{Code: "MXN", Symbol: "$", Label: "MXN $"},
}

// Valid reports whether code belongs to the supported set.
func Valid(code string) bool {
	for _, c := range Supported {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Lookup returns the currency for code, falling back to the default.
func Lookup(code string) Currency {
	for _, c := range Supported {
		if c.Code == code {
			return c
		}
	}
	return Lookup(Default)
}
