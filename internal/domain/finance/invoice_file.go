package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFile records a generated document that was uploaded to object storage
type InvoiceFile struct {
	ID        uuid.UUID
	InvoiceID *uuid.UUID // nil when the document was generated for an unsaved invoice
	FileName  string
	FilePath  string
	FileURL   string
	FileType  string
	FileSize  int64
	CreatedAt time.Time
}

// InvoiceFileRepository persists uploaded document metadata
type InvoiceFileRepository interface {
	// Save inserts a metadata row
	Save(ctx context.Context, file *InvoiceFile) error

	// FindByInvoice returns the files of an invoice, newest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceFile, error)
}
