package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/shared"
)

// InvoiceFilter defines filtering options for invoice list queries
type InvoiceFilter struct {
	shared.Filter
	Status        *InvoiceStatus
	PaymentStatus *PaymentStatus
	ClientName    string // case-insensitive contains
}

// PaymentFilter defines filtering options for payment list queries
type PaymentFilter struct {
	shared.Filter
	Status *PaymentRecordStatus
	Method *PaymentMethod
}

// InvoiceReader is the read side of invoice persistence used by the document pipeline
type InvoiceReader interface {
	// FindByID finds an invoice with its client snapshot
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// List returns one page of invoices and the total matching count
	List(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)

	// FindCreatedBetween returns invoices created in [from, to], newest first
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Invoice, error)
}

// PaymentReader is the read side of payment persistence used by the document pipeline
type PaymentReader interface {
	// FindByInvoice returns all payments of an invoice, newest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// FindPaidBetween returns payments whose payment date is in [from, to], newest first
	FindPaidBetween(ctx context.Context, from, to time.Time) ([]Payment, error)

	// List returns one page of payments and the total matching count
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
}
