package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const paymentRowColumns = "payments.*, invoices.invoice_number AS invoice_number, " +
	"clients.name AS client_name, clients.company AS client_company"

// GormPaymentRepository implements finance.PaymentReader using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// joined selects payments with their invoice number and client
func (r *GormPaymentRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("payments").
		Select(paymentRowColumns).
		Joins("LEFT JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("LEFT JOIN clients ON clients.id = invoices.client_id")
}

// FindByInvoice returns all payments of an invoice, newest first
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]finance.Payment, error) {
	var rows []models.PaymentRow
	if err := r.joined(ctx).
		Where("payments.invoice_id = ?", invoiceID).
		Order("payments.payment_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(rows), nil
}

// FindPaidBetween returns payments whose payment date is in [from, to], newest first
func (r *GormPaymentRepository) FindPaidBetween(ctx context.Context, from, to time.Time) ([]finance.Payment, error) {
	var rows []models.PaymentRow
	if err := r.joined(ctx).
		Where("payments.payment_date >= ? AND payments.payment_date <= ?", from, to).
		Order("payments.payment_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(rows), nil
}

// List returns one page of payments and the total matching count
func (r *GormPaymentRepository) List(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	query := r.joined(ctx)
	if filter.Status != nil {
		count = count.Where("payments.status = ?", string(*filter.Status))
		query = query.Where("payments.status = ?", string(*filter.Status))
	}
	if filter.Method != nil {
		count = count.Where("payments.payment_method = ?", string(*filter.Method))
		query = query.Where("payments.payment_method = ?", string(*filter.Method))
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PaymentRow
	if err := query.
		Order(paymentSort.orderClause(filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPayments(rows), total, nil
}

// Save inserts or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *finance.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Save(&models.PaymentModel{
		ID:              p.ID,
		PaymentNumber:   p.PaymentNumber,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		PaymentMethod:   string(p.Method),
		PaymentDate:     p.PaymentDate,
		Status:          string(p.Status),
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}).Error
}

func toDomainPayments(rows []models.PaymentRow) []finance.Payment {
	payments := make([]finance.Payment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments
}
