package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceFileRepository implements finance.InvoiceFileRepository using GORM
type GormInvoiceFileRepository struct {
	db *gorm.DB
}

// NewGormInvoiceFileRepository creates a new GormInvoiceFileRepository
func NewGormInvoiceFileRepository(db *gorm.DB) *GormInvoiceFileRepository {
	return &GormInvoiceFileRepository{db: db}
}

// Save inserts a metadata row
func (r *GormInvoiceFileRepository) Save(ctx context.Context, file *finance.InvoiceFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	if file.FileType == "" {
		file.FileType = "pdf"
	}
	return r.db.WithContext(ctx).Create(models.InvoiceFileModelFromDomain(file)).Error
}

// FindByInvoice returns the files of an invoice, newest first
func (r *GormInvoiceFileRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]finance.InvoiceFile, error) {
	var fileModels []models.InvoiceFileModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		Find(&fileModels).Error; err != nil {
		return nil, err
	}
	files := make([]finance.InvoiceFile, len(fileModels))
	for i := range fileModels {
		files[i] = fileModels[i].ToDomain()
	}
	return files, nil
}

// Ensure GormInvoiceFileRepository implements InvoiceFileRepository
var _ finance.InvoiceFileRepository = (*GormInvoiceFileRepository)(nil)
