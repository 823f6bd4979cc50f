package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/shopspring/decimal"
)

// Invoice field labels shared by all encoders
const (
	LabelSubtotal   = "Subtotal"
	LabelTotal      = "Total"
	LabelPaid       = "Paid"
	LabelBalanceDue = "Balance Due"
	LabelIssueDate  = "Issue Date"
	LabelDueDate    = "Due Date"
	LabelPaidDate   = "Paid Date"
	LabelCurrency   = "Currency"
	LabelTerms      = "Payment Terms"
	LabelNotes      = "Notes"
)

// InvoiceRecordColumns is the header of the single-invoice tabular export
var InvoiceRecordColumns = []string{"Field", "Value"}

type invoiceDates struct {
	issue, due, paid *time.Time
}

// BuildInvoice shapes one invoice into a document tree.
// Sections: Header, Bill To, Invoice Details, Description, Financial Summary, Notes & Terms, Footer.
// Description and Notes & Terms are omitted when empty.
func BuildInvoice(s InvoiceSnapshot, opts BuildOptions) (*Document, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	dates, err := parseInvoiceDates(s)
	if err != nil {
		return nil, err
	}
	if dates.issue == nil {
		now := opts.Now
		dates.issue = &now
	}

	currency := strings.ToUpper(strings.TrimSpace(s.Currency))
	if currency == "" {
		currency = opts.DefaultCurrency
	}
	number := strings.TrimSpace(s.InvoiceNumber)
	displayNumber := number
	if displayNumber == "" {
		displayNumber = "DRAFT"
	}

	amounts := resolveAmounts(s)
	paymentStatus := s.PaymentStatus
	if amounts.total.GreaterThan(decimal.Zero) && amounts.paid.GreaterThanOrEqual(amounts.total) {
		paymentStatus = string(finance.PaymentStatusPaid)
	}

	doc := &Document{
		Kind:        KindInvoice,
		Title:       "INVOICE",
		Reference:   displayNumber,
		Currency:    currency,
		GeneratedAt: opts.Now,
		Page:        opts.Page,
	}

	doc.Sections = append(doc.Sections, invoiceHeader(s, displayNumber, paymentStatus, opts))
	doc.Sections = append(doc.Sections, invoiceParties(s))
	doc.Sections = append(doc.Sections, invoiceDetails(dates, currency))
	if desc := strings.TrimSpace(s.Description); desc != "" {
		doc.Sections = append(doc.Sections, Section{Kind: SectionDescription, Title: "Description", Text: desc})
	}
	doc.Sections = append(doc.Sections, invoiceSummary(amounts, currency))
	if notes, ok := invoiceNotes(s); ok {
		doc.Sections = append(doc.Sections, notes)
	}
	doc.Sections = append(doc.Sections, footer(opts, "Invoice #"+displayNumber))

	doc.Records = invoiceRecords(s, amounts, dates, currency, paymentStatus)
	return doc, nil
}

func parseInvoiceDates(s InvoiceSnapshot) (invoiceDates, error) {
	var d invoiceDates
	var err error
	if d.issue, err = format.ParseDate(s.IssueDate); err != nil {
		return d, &RenderError{Field: "issue_date", Cause: err}
	}
	if d.due, err = format.ParseDate(s.DueDate); err != nil {
		return d, &RenderError{Field: "due_date", Cause: err}
	}
	if d.paid, err = format.ParseDate(s.PaidDate); err != nil {
		return d, &RenderError{Field: "paid_date", Cause: err}
	}
	return d, nil
}

type invoiceAmounts struct {
	subtotal, rate, tax, total, paid, remaining decimal.Decimal
}

func resolveAmounts(s InvoiceSnapshot) invoiceAmounts {
	a := invoiceAmounts{
		subtotal: valueOr(s.Amount, decimal.Zero),
		rate:     valueOr(s.TaxRate, decimal.Zero),
		total:    valueOr(s.TotalAmount, decimal.Zero),
		paid:     valueOr(s.PaidAmount, decimal.Zero),
	}
	if s.TaxAmount != nil {
		a.tax = *s.TaxAmount
	} else {
		a.tax = finance.ComputeInvoiceTotals(a.subtotal, a.rate).TaxAmount
	}
	if s.RemainingAmount != nil {
		a.remaining = finance.ComputeRemaining(*s.RemainingAmount, decimal.Zero).Display
	} else {
		a.remaining = finance.ComputeRemaining(a.total, a.paid).Display
	}
	return a
}

func invoiceHeader(s InvoiceSnapshot, number, paymentStatus string, opts BuildOptions) Section {
	sec := Section{Kind: SectionHeader, Title: "INVOICE"}
	sec.Fields = append(sec.Fields, Field{Label: "Company", Value: opts.CompanyName, Emphasis: EmphasisNeutral})
	if t := strings.TrimSpace(s.Title); t != "" {
		sec.Fields = append(sec.Fields, Field{Label: "Title", Value: t, Emphasis: EmphasisNeutral})
	}
	sec.Fields = append(sec.Fields, Field{Label: "Number", Value: "#" + number, Emphasis: EmphasisNeutral})

	statusLabel, statusEmphasis := InvoiceStatusLabel(s.Status)
	payLabel, payEmphasis := PaymentStatusLabel(paymentStatus)
	sec.Badges = []Badge{
		{Label: statusLabel, Emphasis: statusEmphasis},
		{Label: payLabel, Emphasis: payEmphasis},
	}
	return sec
}

func invoiceParties(s InvoiceSnapshot) Section {
	name := strings.TrimSpace(s.ClientName)
	if name == "" {
		name = format.NotAvailable
	}
	sec := Section{Kind: SectionParties, Title: "Bill To"}
	sec.Fields = append(sec.Fields, Field{Label: "Client", Value: name, Emphasis: EmphasisNeutral})
	if c := strings.TrimSpace(s.ClientCompany); c != "" {
		sec.Fields = append(sec.Fields, Field{Label: "Company", Value: c, Emphasis: EmphasisNeutral})
	}
	if e := strings.TrimSpace(s.ClientEmail); e != "" {
		sec.Fields = append(sec.Fields, Field{Label: "Email", Value: e, Emphasis: EmphasisNeutral})
	}
	return sec
}

func invoiceDetails(d invoiceDates, currency string) Section {
	sec := Section{Kind: SectionDetails, Title: "Invoice Details"}
	sec.Fields = append(sec.Fields,
		Field{Label: LabelIssueDate, Value: format.Date(d.issue), Emphasis: EmphasisNeutral},
		Field{Label: LabelDueDate, Value: format.Date(d.due), Emphasis: EmphasisNeutral},
	)
	if d.paid != nil {
		sec.Fields = append(sec.Fields, Field{Label: LabelPaidDate, Value: format.Date(d.paid), Emphasis: EmphasisPositive})
	}
	sec.Fields = append(sec.Fields, Field{Label: LabelCurrency, Value: currency, Emphasis: EmphasisNeutral})
	return sec
}

func invoiceSummary(a invoiceAmounts, currency string) Section {
	sec := Section{Kind: SectionSummary, Title: "Financial Summary"}
	sec.Fields = append(sec.Fields, Field{Label: LabelSubtotal, Value: format.Currency(a.subtotal, currency), Emphasis: EmphasisNeutral})
	if a.tax.GreaterThan(decimal.Zero) {
		sec.Fields = append(sec.Fields, Field{
			Label:    fmt.Sprintf("Tax (%s%%)", format.Percent(a.rate)),
			Value:    format.Currency(a.tax, currency),
			Emphasis: EmphasisNeutral,
		})
	}
	sec.Fields = append(sec.Fields, Field{Label: LabelTotal, Value: format.Currency(a.total, currency), Emphasis: EmphasisNeutral, Highlight: true})
	if a.paid.GreaterThan(decimal.Zero) {
		sec.Fields = append(sec.Fields, Field{Label: LabelPaid, Value: format.Currency(a.paid, currency), Emphasis: EmphasisPositive})
	}
	if a.remaining.GreaterThan(decimal.Zero) {
		sec.Fields = append(sec.Fields, Field{Label: LabelBalanceDue, Value: format.Currency(a.remaining, currency), Emphasis: EmphasisNegative, Highlight: true})
	}
	return sec
}

func invoiceNotes(s InvoiceSnapshot) (Section, bool) {
	sec := Section{Kind: SectionNotes, Title: "Notes & Terms"}
	if t := strings.TrimSpace(s.Terms); t != "" {
		sec.Fields = append(sec.Fields, Field{Label: LabelTerms, Value: t, Emphasis: EmphasisNeutral})
	}
	if n := strings.TrimSpace(s.Notes); n != "" {
		sec.Fields = append(sec.Fields, Field{Label: LabelNotes, Value: n, Emphasis: EmphasisNeutral})
	}
	return sec, len(sec.Fields) > 0
}

func footer(opts BuildOptions, reference string) Section {
	now := opts.Now
	return Section{
		Kind: SectionFooter,
		Fields: []Field{
			{Label: "Generated", Value: fmt.Sprintf("Generated on %s - %s", format.ShortDate(&now), opts.CompanyName), Emphasis: EmphasisNeutral},
			{Label: "Reference", Value: opts.ProductName + " - " + reference, Emphasis: EmphasisNeutral},
		},
	}
}

func invoiceRecords(s InvoiceSnapshot, a invoiceAmounts, d invoiceDates, currency, paymentStatus string) *Table {
	rows := [][]string{
		{"Invoice Number", s.InvoiceNumber},
		{"Title", s.Title},
		{"Client", s.ClientName},
		{"Client Company", s.ClientCompany},
		{"Client Email", s.ClientEmail},
		{"Issue Date", format.ISODate(d.issue)},
		{"Due Date", format.ISODate(d.due)},
		{"Status", s.Status},
		{"Payment Status", paymentStatus},
		{"Currency", currency},
		{"Amount", a.subtotal.String()},
		{"Tax Rate", a.rate.String()},
		{"Tax Amount", a.tax.String()},
		{"Total Amount", a.total.String()},
		{"Paid Amount", a.paid.String()},
		{"Remaining Amount", a.remaining.String()},
		{"Description", s.Description},
		{"Notes", s.Notes},
		{"Terms", s.Terms},
	}
	return &Table{Columns: InvoiceRecordColumns, Rows: rows}
}
