// Package format renders amounts and dates for the Indonesian locale used on every document.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// nbsp separates the currency symbol from the amount, as the id-ID locale does.
const nbsp = "\u00a0"

// Locale is the fixed document locale
var Locale = language.Indonesian

// currencySymbols maps ISO 4217 codes to their id-ID display symbols.
// Codes without an entry are printed as the code itself.
var currencySymbols = map[string]string{
	"IDR": "Rp",
	"USD": "US$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "JP¥",
	"CNY": "CN¥",
	"AUD": "AU$",
	"SGD": "SGD",
	"MYR": "MYR",
}

// =============================================================================
// Currency
// =============================================================================

// Currency formats an amount as id-ID currency text with no fraction digits.
// Halves round away from zero. Example: 1234567.5 IDR -> "Rp\u00a01.234.568".
func Currency(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = "IDR"
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}

	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	return sign + symbol + nbsp + Integer(rounded)
}

// CurrencyPtr formats an optional amount, treating nil as zero
func CurrencyPtr(amount *decimal.Decimal, currencyCode string) string {
	if amount == nil {
		return Currency(decimal.Zero, currencyCode)
	}
	return Currency(*amount, currencyCode)
}

// CurrencyString parses a raw amount and formats it. Empty input is zero; unparseable input is an error.
func CurrencyString(raw, currencyCode string) (string, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return "", err
	}
	return Currency(amount, currencyCode), nil
}

// Integer formats the integer part of d with id-ID digit grouping: 1234567 -> "1.234.567".
func Integer(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%d", d.Round(0).IntPart())
}

// Percent formats a tax rate the way invoices print it: 11 -> "11", 7.5 -> "7.5".
func Percent(rate decimal.Decimal) string {
	return rate.String()
}

// ParseAmount parses a numeric string. Empty input yields zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}
