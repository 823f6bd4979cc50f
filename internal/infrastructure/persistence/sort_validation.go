package persistence

import (
	"slices"
	"strings"
)

// sortColumns whitelists the columns a list query may order by.
// Anything outside the list falls back to the default column, descending.
type sortColumns struct {
	table    string
	fallback string
	allowed  []string
}

var (
	invoiceSort = sortColumns{
		table:    "invoices",
		fallback: "created_at",
		allowed: []string{
			"id", "created_at", "updated_at", "invoice_number", "issue_date",
			"due_date", "status", "payment_status", "total_amount", "remaining_amount",
		},
	}
	paymentSort = sortColumns{
		table:    "payments",
		fallback: "payment_date",
		allowed: []string{
			"id", "created_at", "payment_number", "payment_date", "amount", "status", "payment_method",
		},
	}
)

// column returns field when it is whitelisted, else the fallback column
func (s sortColumns) column(field string) string {
	field = strings.TrimSpace(field)
	if slices.Contains(s.allowed, field) {
		return field
	}
	return s.fallback
}

// direction normalizes to ASC or DESC; DESC is the default
func direction(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// orderClause builds a table-qualified ORDER BY expression safe to pass to gorm
func (s sortColumns) orderClause(field, dir string) string {
	return s.table + "." + s.column(field) + " " + direction(dir)
}
