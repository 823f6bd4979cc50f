package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/shopspring/decimal"
)

// Data sourcing constants for aggregate reports
const (
	MonthsBack      = 12
	TopClientsLimit = 50
)

// ReportType is one of the supported aggregate views
type ReportType string

const (
	TypeFinancialSummary ReportType = "financial_summary"
	TypeInvoiceReport    ReportType = "invoice_report"
	TypePaymentReport    ReportType = "payment_report"
	TypeClientReport     ReportType = "client_report"
	TypeMonthlyAnalysis  ReportType = "monthly_analysis"
)

// AllTypes lists report types in display order
var AllTypes = []ReportType{
	TypeFinancialSummary,
	TypeInvoiceReport,
	TypePaymentReport,
	TypeClientReport,
	TypeMonthlyAnalysis,
}

// IsValid checks if the report type is supported
func (t ReportType) IsValid() bool {
	switch t {
	case TypeFinancialSummary, TypeInvoiceReport, TypePaymentReport,
		TypeClientReport, TypeMonthlyAnalysis:
		return true
	}
	return false
}

// String returns the string representation of ReportType
func (t ReportType) String() string {
	return string(t)
}

// Title returns the human readable report name
func (t ReportType) Title() string {
	switch t {
	case TypeFinancialSummary:
		return "Financial Summary"
	case TypeInvoiceReport:
		return "Invoice Report"
	case TypePaymentReport:
		return "Payment Report"
	case TypeClientReport:
		return "Client Report"
	case TypeMonthlyAnalysis:
		return "Monthly Analysis"
	}
	return string(t)
}

// ParseReportType validates raw input as a ReportType
func ParseReportType(s string) (ReportType, error) {
	t := ReportType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", shared.NewDomainError(shared.ErrCodeValidation, "Invalid report type")
	}
	return t, nil
}

// DateRange is an inclusive date range. A date-only To covers the whole day.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Bounds returns the inclusive lower and upper instants of the range
func (r DateRange) Bounds() (time.Time, time.Time) {
	to := r.To
	if !to.IsZero() && to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 && to.Nanosecond() == 0 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return r.From, to
}

// ParseDateRange reads an inclusive range from its text ends. A missing start is
// unbounded and a missing end is now.
func ParseDateRange(from, to string, now time.Time) (DateRange, error) {
	rng := DateRange{To: now}
	start, err := format.ParseDate(from)
	if err != nil {
		return rng, err
	}
	end, err := format.ParseDate(to)
	if err != nil {
		return rng, err
	}
	if start != nil {
		rng.From = *start
	}
	if end != nil {
		rng.To = *end
	}
	return rng, nil
}

// IsInverted reports whether From is after To
func (r DateRange) IsInverted() bool {
	return r.From.After(r.To)
}


// MonthlyRevenue is one point of the monthly revenue series
type MonthlyRevenue struct {
	MonthYear string          `json:"month_year"`
	Revenue   decimal.Decimal `json:"revenue"`
	Payments  decimal.Decimal `json:"payments"`
}

// TopClient is one row of the top clients by revenue ranking
type TopClient struct {
	ClientID      uuid.UUID       `json:"client_id"`
	ClientName    string          `json:"client_name"`
	ClientCompany string          `json:"client_company,omitempty"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	InvoiceCount  int             `json:"invoice_count"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// Bundle is the data gathered for one report. Only the fields of its Type are populated.
type Bundle struct {
	Type     ReportType
	Range    DateRange
	Metrics  *finance.FinancialMetrics
	Monthly  []MonthlyRevenue
	Invoices []finance.Invoice
	Payments []finance.Payment
	Clients  []TopClient
}

// Reader exposes the aggregate procedures backing the reports
type Reader interface {
	// FinancialMetrics returns the aggregate metrics over all invoices
	FinancialMetrics(ctx context.Context) (*finance.FinancialMetrics, error)

	// MonthlyRevenue returns revenue and payments per month for the last monthsBack months
	MonthlyRevenue(ctx context.Context, monthsBack int) ([]MonthlyRevenue, error)

	// TopClients returns the clients with the highest revenue
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
}
