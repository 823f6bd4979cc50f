package format

import (
	"fmt"
	"strings"
	"time"
)

// NotAvailable is printed in place of absent values
const NotAvailable = "N/A"

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// =============================================================================
// Dates
// =============================================================================

// Date renders a long id-ID date: "15 Januari 2024". Nil or zero dates render as "N/A".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// ShortDate renders a short id-ID date: "15/01/2024". Nil or zero dates render as "N/A".
func ShortDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Format("02/01/2006")
}

// ISODate renders YYYY-MM-DD, used in file names and tabular exports
func ISODate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// MonthName returns the Indonesian month name
func MonthName(m time.Month) string {
	return indonesianMonths[m-1]
}

// ParseDate parses RFC 3339 timestamps or plain dates. Empty input returns nil; anything else unparseable is an error.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", raw)
}

// DateString parses and renders a long date in one step
func DateString(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return Date(t), nil
}
