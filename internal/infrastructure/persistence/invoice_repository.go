package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceReader using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its client snapshot
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrCodeNotFound, "Invoice not found")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns one page of invoices and the total matching count
func (r *GormInvoiceRepository) List(ctx context.Context, filter finance.InvoiceFilter) ([]finance.Invoice, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoiceModels []models.InvoiceModel
	if err := query.
		Preload("Client").
		Order(invoiceSort.orderClause(filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainInvoices(invoiceModels), total, nil
}

// FindCreatedBetween returns invoices created in [from, to], newest first
func (r *GormInvoiceRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels), nil
}

// Save inserts or updates an invoice. Derived amounts are recomputed before writing.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *finance.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now
	inv.Recalculate()
	return r.db.WithContext(ctx).Save(models.InvoiceModelFromDomain(inv)).Error
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter finance.InvoiceFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("invoices.status = ?", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		query = query.Where("invoices.payment_status = ?", string(*filter.PaymentStatus))
	}
	name := strings.TrimSpace(filter.ClientName)
	search := strings.TrimSpace(filter.Search)
	if name != "" || search != "" {
		query = query.Joins("LEFT JOIN clients ON clients.id = invoices.client_id")
	}
	if name != "" {
		query = query.Where("LOWER(clients.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(invoices.invoice_number) LIKE ? OR LOWER(invoices.title) LIKE ? OR LOWER(clients.name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

func toDomainInvoices(invoiceModels []models.InvoiceModel) []finance.Invoice {
	invoices := make([]finance.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices
}
