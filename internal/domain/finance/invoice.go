package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used whenever an invoice carries no currency code
const DefaultCurrency = "IDR"

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// PaymentStatus represents how much of an invoice has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ClientRef is the client snapshot denormalized onto an invoice at read time
type ClientRef struct {
	ID      uuid.UUID
	Name    string
	Company string
	Email   string
}

// Invoice is a billing document owed by a client
type Invoice struct {
	ID              uuid.UUID
	InvoiceNumber   string
	Title           string
	Description     string
	Client          ClientRef
	IssueDate       *time.Time
	DueDate         *time.Time
	PaidDate        *time.Time
	Status          InvoiceStatus
	PaymentStatus   PaymentStatus
	Amount          decimal.Decimal // subtotal before tax
	TaxRate         decimal.Decimal // percentage, 11 means 11%
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Currency        string
	Notes           string
	Terms           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Recalculate derives tax, total and remaining amounts from the subtotal, rate and paid amount.
func (i *Invoice) Recalculate() {
	totals := ComputeInvoiceTotals(i.Amount, i.TaxRate)
	i.TaxAmount = totals.TaxAmount
	i.TotalAmount = totals.TotalAmount
	i.RemainingAmount = ComputeRemaining(i.TotalAmount, i.PaidAmount).Display
	i.PaymentStatus = DerivePaymentStatus(i.TotalAmount, i.PaidAmount)
}

// Remaining returns both the display and the raw remaining balance
func (i *Invoice) Remaining() Remaining {
	return ComputeRemaining(i.TotalAmount, i.PaidAmount)
}

// CurrencyCode returns the invoice currency or the default one
func (i *Invoice) CurrencyCode() string {
	if c := strings.TrimSpace(i.Currency); c != "" {
		return strings.ToUpper(c)
	}
	return DefaultCurrency
}

// IsPaid reports whether either status marks the invoice as settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid || i.PaymentStatus == PaymentStatusPaid
}

// IsOverdue reports whether the invoice still has a balance past its due date.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusCancelled || i.IsPaid() {
		return false
	}
	if i.Status == InvoiceStatusOverdue {
		return true
	}
	if i.DueDate == nil {
		return false
	}
	return startOfDay(*i.DueDate).Before(startOfDay(now))
}

// DerivePaymentStatus maps paid versus total onto unpaid, partial or paid.
func DerivePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
