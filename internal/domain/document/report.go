package document

import (
	"fmt"
	"strconv"

	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/shopspring/decimal"
)

// Tabular column layouts per report type
var (
	InvoiceReportColumns = []string{
		"Invoice Number", "Title", "Client", "Amount", "Tax Amount", "Total Amount",
		"Paid Amount", "Remaining", "Status", "Payment Status", "Issue Date", "Due Date",
	}
	PaymentReportColumns = []string{
		"Payment Number", "Invoice Number", "Client", "Amount", "Payment Method",
		"Payment Date", "Reference Number", "Status",
	}
	ClientReportColumns  = []string{"Client Name", "Company", "Total Revenue", "Invoice Count", "Paid Amount"}
	MonthlyReportColumns = []string{"Month", "Revenue", "Payments"}
)

const (
	reportHeaderTitle = "FINANCIAL REPORT"
	monthlyChartTitle = "Monthly Revenue"
)

// ColumnsFor returns the tabular layout of a report type, or nil when it has none
func ColumnsFor(t report.ReportType) []string {
	switch t {
	case report.TypeInvoiceReport:
		return InvoiceReportColumns
	case report.TypePaymentReport:
		return PaymentReportColumns
	case report.TypeClientReport:
		return ClientReportColumns
	case report.TypeMonthlyAnalysis:
		return MonthlyReportColumns
	}
	return nil
}

// BuildReport shapes a report bundle into a document tree.
// Sections: Header, Key Metrics, Chart Series, Rows, Footer. Chart and Rows are omitted when empty;
// Records keeps the tabular layout even with zero rows.
func BuildReport(b report.Bundle, opts BuildOptions) (*Document, error) {
	if !b.Type.IsValid() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Invalid report type")
	}
	opts = opts.withDefaults()
	currency := opts.DefaultCurrency

	doc := &Document{
		Kind:        KindReport,
		Title:       b.Type.Title(),
		Reference:   string(b.Type),
		Currency:    currency,
		GeneratedAt: opts.Now,
		Page:        opts.Page,
	}

	doc.Sections = append(doc.Sections, reportHeader(b, opts))
	doc.Sections = append(doc.Sections, reportMetrics(b, opts, currency))

	if chart := monthlyTable(b.Monthly, currency); chart != nil && (b.Type == report.TypeFinancialSummary || b.Type == report.TypeMonthlyAnalysis) {
		doc.Sections = append(doc.Sections, Section{Kind: SectionChart, Title: monthlyChartTitle, Table: chart})
	}

	display, records := reportRows(b, currency)
	if display.Len() > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: SectionRows, Title: b.Type.Title(), Table: display})
	}
	doc.Records = records

	doc.Sections = append(doc.Sections, footer(opts, b.Type.Title()))
	return doc, nil
}

func reportHeader(b report.Bundle, opts BuildOptions) Section {
	sec := Section{Kind: SectionHeader, Title: reportHeaderTitle}
	sec.Fields = append(sec.Fields,
		Field{Label: "Company", Value: opts.CompanyName, Emphasis: EmphasisNeutral},
		Field{Label: "Title", Value: b.Type.Title(), Emphasis: EmphasisNeutral},
	)
	if b.Type == report.TypeInvoiceReport || b.Type == report.TypePaymentReport {
		from, to := b.Range.From, b.Range.To
		sec.Fields = append(sec.Fields, Field{
			Label:    "Period",
			Value:    format.Date(&from) + " - " + format.Date(&to),
			Emphasis: EmphasisNeutral,
		})
	}
	return sec
}

func reportMetrics(b report.Bundle, opts BuildOptions, currency string) Section {
	sec := Section{Kind: SectionMetrics, Title: "Key Metrics"}
	money := func(label string, d decimal.Decimal, e Emphasis) Field {
		return Field{Label: label, Value: format.Currency(d, currency), Emphasis: e}
	}
	count := func(label string, n int) Field {
		return Field{Label: label, Value: strconv.Itoa(n), Emphasis: EmphasisNeutral}
	}

	switch b.Type {
	case report.TypeFinancialSummary:
		m := finance.FinancialMetrics{}
		if b.Metrics != nil {
			m = *b.Metrics
		}
		sec.Fields = append(sec.Fields,
			money("Total Revenue", m.TotalRevenue, EmphasisNeutral),
			money("Paid Revenue", m.PaidRevenue, EmphasisPositive),
			money("Pending Revenue", m.PendingRevenue, EmphasisWarning),
			money("Overdue Revenue", m.OverdueRevenue, overdueEmphasis(m.OverdueRevenue)),
			count("Total Invoices", m.TotalInvoices),
			count("Paid Invoices", m.PaidInvoices),
			Field{Label: "Collection Rate", Value: fmt.Sprintf("%d%%", m.CollectionRate()), Emphasis: EmphasisNeutral},
		)
	case report.TypeInvoiceReport:
		m := finance.AggregateReportMetrics(b.Invoices, opts.Now)
		sec.Fields = append(sec.Fields,
			count("Total Invoices", m.TotalInvoices),
			money("Total Revenue", m.TotalRevenue, EmphasisNeutral),
			money("Paid Revenue", m.PaidRevenue, EmphasisPositive),
			money("Outstanding", m.Outstanding(), EmphasisWarning),
			money("Overdue Revenue", m.OverdueRevenue, overdueEmphasis(m.OverdueRevenue)),
		)
	case report.TypePaymentReport:
		pending := 0
		for _, p := range b.Payments {
			if p.Status == finance.PaymentPending {
				pending++
			}
		}
		sec.Fields = append(sec.Fields,
			count("Total Payments", len(b.Payments)),
			money("Completed Amount", finance.SumCompleted(b.Payments), EmphasisPositive),
			count("Pending Payments", pending),
		)
	case report.TypeClientReport:
		revenue, paid := decimal.Zero, decimal.Zero
		for _, c := range b.Clients {
			revenue = revenue.Add(c.TotalRevenue)
			paid = paid.Add(c.PaidAmount)
		}
		sec.Fields = append(sec.Fields,
			count("Clients", len(b.Clients)),
			money("Total Revenue", revenue, EmphasisNeutral),
			money("Paid Amount", paid, EmphasisPositive),
		)
	case report.TypeMonthlyAnalysis:
		revenue, payments := decimal.Zero, decimal.Zero
		for _, m := range b.Monthly {
			revenue = revenue.Add(m.Revenue)
			payments = payments.Add(m.Payments)
		}
		sec.Fields = append(sec.Fields,
			count("Months", len(b.Monthly)),
			money("Total Revenue", revenue, EmphasisNeutral),
			money("Total Payments", payments, EmphasisPositive),
		)
	}
	return sec
}

func overdueEmphasis(d decimal.Decimal) Emphasis {
	if d.GreaterThan(decimal.Zero) {
		return EmphasisNegative
	}
	return EmphasisNeutral
}

func monthlyTable(series []report.MonthlyRevenue, currency string) *Table {
	if len(series) == 0 {
		return nil
	}
	t := &Table{Columns: MonthlyReportColumns}
	for _, m := range series {
		t.Rows = append(t.Rows, []string{m.MonthYear, format.Currency(m.Revenue, currency), format.Currency(m.Payments, currency)})
	}
	return t
}

// reportRows returns the display table and the raw records for the report type.
// Both are nil for report types without a tabular layout.
func reportRows(b report.Bundle, currency string) (*Table, *Table) {
	columns := ColumnsFor(b.Type)
	if columns == nil {
		return nil, nil
	}
	display := &Table{Columns: columns, Rows: [][]string{}}
	records := &Table{Columns: columns, Rows: [][]string{}}

	switch b.Type {
	case report.TypeInvoiceReport:
		for i := range b.Invoices {
			inv := &b.Invoices[i]
			status, _ := InvoiceStatusLabel(string(inv.Status))
			payStatus, _ := PaymentStatusLabel(string(inv.PaymentStatus))
			display.Rows = append(display.Rows, []string{
				inv.InvoiceNumber, inv.Title, inv.Client.Name,
				format.Currency(inv.Amount, inv.CurrencyCode()),
				format.Currency(inv.TaxAmount, inv.CurrencyCode()),
				format.Currency(inv.TotalAmount, inv.CurrencyCode()),
				format.Currency(inv.PaidAmount, inv.CurrencyCode()),
				format.Currency(finance.ComputeRemaining(inv.RemainingAmount, decimal.Zero).Display, inv.CurrencyCode()),
				status, payStatus,
				format.ShortDate(inv.IssueDate), format.ShortDate(inv.DueDate),
			})
			records.Rows = append(records.Rows, []string{
				inv.InvoiceNumber, inv.Title, inv.Client.Name,
				inv.Amount.String(), inv.TaxAmount.String(), inv.TotalAmount.String(),
				inv.PaidAmount.String(), inv.RemainingAmount.String(),
				string(inv.Status), string(inv.PaymentStatus),
				format.ISODate(inv.IssueDate), format.ISODate(inv.DueDate),
			})
		}
	case report.TypePaymentReport:
		for i := range b.Payments {
			p := &b.Payments[i]
			date := p.PaymentDate
			status := title(normalizeStatus(string(p.Status)))
			display.Rows = append(display.Rows, []string{
				p.PaymentNumber, p.InvoiceNumber, p.ClientName,
				format.Currency(p.Amount, currency), title(normalizeStatus(string(p.Method))),
				format.ShortDate(&date), p.ReferenceNumber, status,
			})
			records.Rows = append(records.Rows, []string{
				p.PaymentNumber, p.InvoiceNumber, p.ClientName,
				p.Amount.String(), string(p.Method),
				format.ISODate(&date), p.ReferenceNumber, string(p.Status),
			})
		}
	case report.TypeClientReport:
		for _, c := range b.Clients {
			display.Rows = append(display.Rows, []string{
				c.ClientName, c.ClientCompany,
				format.Currency(c.TotalRevenue, currency), strconv.Itoa(c.InvoiceCount),
				format.Currency(c.PaidAmount, currency),
			})
			records.Rows = append(records.Rows, []string{
				c.ClientName, c.ClientCompany,
				c.TotalRevenue.String(), strconv.Itoa(c.InvoiceCount), c.PaidAmount.String(),
			})
		}
	case report.TypeMonthlyAnalysis:
		for _, m := range b.Monthly {
			records.Rows = append(records.Rows, []string{m.MonthYear, m.Revenue.String(), m.Payments.String()})
		}
		// the chart section already shows the series
		display = nil
	}
	return display, records
}
