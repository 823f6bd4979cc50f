package document

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title uses a fresh caser per call; cases.Caser is not safe for concurrent use.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// InvoiceStatusLabel maps an invoice lifecycle status to its display label and emphasis.
func InvoiceStatusLabel(status string) (string, Emphasis) {
	s := normalizeStatus(status)
	if s == "" {
		s = "draft"
	}
	return title(s), StatusEmphasis(s)
}

// PaymentStatusLabel maps an invoice payment status to its display label and emphasis.
// A settled invoice displays as "Fully Paid".
func PaymentStatusLabel(status string) (string, Emphasis) {
	s := normalizeStatus(status)
	switch s {
	case "", "unpaid":
		return "Unpaid", EmphasisNeutral
	case "paid", "fully paid":
		return "Fully Paid", EmphasisPositive
	case "partial", "partially paid":
		return "Partial", EmphasisWarning
	}
	return title(s), StatusEmphasis(s)
}

// StatusEmphasis returns the emphasis category of any invoice or payment status
func StatusEmphasis(status string) Emphasis {
	switch normalizeStatus(status) {
	case "paid", "fully paid", "completed":
		return EmphasisPositive
	case "sent":
		return EmphasisInfo
	case "overdue", "cancelled", "failed":
		return EmphasisNegative
	case "partial", "partially paid", "pending":
		return EmphasisWarning
	default:
		return EmphasisNeutral
	}
}

func normalizeStatus(status string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(status)), "_", " ")
}
