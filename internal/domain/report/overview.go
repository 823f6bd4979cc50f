package report

import (
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Overdue hints shown on the overview
const (
	OverdueRequiresAttention = "Requires attention"
	OverdueAllCurrent        = "All current"
)

// Overview is the reports dashboard read model
type Overview struct {
	Metrics         finance.FinancialMetrics `json:"metrics"`
	CollectionRate  int                      `json:"collection_rate"`
	Outstanding     decimal.Decimal          `json:"outstanding"`
	PendingInvoices int                      `json:"pending_invoices"`
	OverdueHint     string                   `json:"overdue_hint"`
	Monthly         []MonthlyRevenue         `json:"monthly"`
	TopClients      []TopClient              `json:"top_clients"`
}

// NewOverview derives the dashboard figures from aggregate metrics
func NewOverview(m finance.FinancialMetrics, monthly []MonthlyRevenue, clients []TopClient) Overview {
	hint := OverdueAllCurrent
	if m.OverdueRevenue.GreaterThan(decimal.Zero) {
		hint = OverdueRequiresAttention
	}
	if monthly == nil {
		monthly = []MonthlyRevenue{}
	}
	if clients == nil {
		clients = []TopClient{}
	}
	return Overview{
		Metrics:         m,
		CollectionRate:  m.CollectionRate(),
		Outstanding:     m.Outstanding(),
		PendingInvoices: m.PendingInvoices(),
		OverdueHint:     hint,
		Monthly:         monthly,
		TopClients:      clients,
	}
}
