package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialMetrics is the report-level aggregate over a set of invoices
type FinancialMetrics struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PaidRevenue    decimal.Decimal `json:"paid_revenue"`
	PendingRevenue decimal.Decimal `json:"pending_revenue"`
	OverdueRevenue decimal.Decimal `json:"overdue_revenue"`
	TotalInvoices  int             `json:"total_invoices"`
	PaidInvoices   int             `json:"paid_invoices"`
}

// CollectionRate returns the paid share of total revenue as a whole percentage
func (m FinancialMetrics) CollectionRate() int {
	return Percentage(m.PaidRevenue, m.TotalRevenue)
}

// Outstanding returns total minus paid revenue
func (m FinancialMetrics) Outstanding() decimal.Decimal {
	return m.TotalRevenue.Sub(m.PaidRevenue)
}

// PendingInvoices returns the number of invoices not yet paid
func (m FinancialMetrics) PendingInvoices() int {
	return m.TotalInvoices - m.PaidInvoices
}

// AggregateReportMetrics sums invoices into report metrics.
// Remaining balances are bucketed into overdue or pending by due date relative to now;
// cancelled invoices contribute to totals only.
func AggregateReportMetrics(invoices []Invoice, now time.Time) FinancialMetrics {
	m := FinancialMetrics{
		TotalRevenue:   decimal.Zero,
		PaidRevenue:    decimal.Zero,
		PendingRevenue: decimal.Zero,
		OverdueRevenue: decimal.Zero,
	}

	for i := range invoices {
		inv := &invoices[i]
		m.TotalInvoices++
		m.TotalRevenue = m.TotalRevenue.Add(inv.TotalAmount)

		if inv.IsPaid() {
			m.PaidRevenue = m.PaidRevenue.Add(inv.PaidAmount)
		}
		if inv.Status == InvoiceStatusPaid {
			m.PaidInvoices++
		}
		if inv.Status == InvoiceStatusCancelled {
			continue
		}

		remaining := inv.Remaining().Display
		if remaining.IsZero() {
			continue
		}
		if inv.IsOverdue(now) {
			m.OverdueRevenue = m.OverdueRevenue.Add(remaining)
		} else {
			m.PendingRevenue = m.PendingRevenue.Add(remaining)
		}
	}

	return m
}
