package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// monthLayout is the month_year label of the monthly revenue series
const monthLayout = "Jan 2006"

// GormReportRepository implements report.Reader.
// On PostgreSQL it reads the financial_metrics view and the get_monthly_revenue /
// get_top_clients functions created by the migrations. Other dialects aggregate
// with portable queries so local sqlite setups produce the same shapes.
type GormReportRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db, now: time.Now}
}

func (r *GormReportRepository) postgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

type metricsRow struct {
	TotalRevenue   decimal.Decimal `gorm:"column:total_revenue"`
	PaidRevenue    decimal.Decimal `gorm:"column:paid_revenue"`
	PendingRevenue decimal.Decimal `gorm:"column:pending_revenue"`
	OverdueRevenue decimal.Decimal `gorm:"column:overdue_revenue"`
	TotalInvoices  int             `gorm:"column:total_invoices"`
	PaidInvoices   int             `gorm:"column:paid_invoices"`
}

// FinancialMetrics returns the aggregate metrics over all invoices
func (r *GormReportRepository) FinancialMetrics(ctx context.Context) (*finance.FinancialMetrics, error) {
	if !r.postgres() {
		return r.portableMetrics(ctx)
	}

	var row metricsRow
	if err := r.db.WithContext(ctx).Raw(
		"SELECT total_revenue, paid_revenue, pending_revenue, overdue_revenue, total_invoices, paid_invoices FROM financial_metrics",
	).Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to read financial metrics: %w", err)
	}
	m := finance.FinancialMetrics(row)
	return &m, nil
}

func (r *GormReportRepository) portableMetrics(ctx context.Context) (*finance.FinancialMetrics, error) {
	now := r.now()
	invoices, err := NewGormInvoiceRepository(r.db).FindCreatedBetween(ctx, time.Time{}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read financial metrics: %w", err)
	}
	m := finance.AggregateReportMetrics(invoices, now)
	return &m, nil
}

type monthlyRow struct {
	MonthYear string          `gorm:"column:month_year"`
	Revenue   decimal.Decimal `gorm:"column:revenue"`
	Payments  decimal.Decimal `gorm:"column:payments"`
}

// MonthlyRevenue returns revenue and payments per month for the last monthsBack months, oldest first
func (r *GormReportRepository) MonthlyRevenue(ctx context.Context, monthsBack int) ([]report.MonthlyRevenue, error) {
	if monthsBack <= 0 {
		monthsBack = report.MonthsBack
	}
	if !r.postgres() {
		return r.portableMonthly(ctx, monthsBack)
	}

	var rows []monthlyRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT month_year, revenue, payments FROM get_monthly_revenue(?)", monthsBack).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read monthly revenue: %w", err)
	}
	out := make([]report.MonthlyRevenue, len(rows))
	for i, row := range rows {
		out[i] = report.MonthlyRevenue(row)
	}
	return out, nil
}

func (r *GormReportRepository) portableMonthly(ctx context.Context, monthsBack int) ([]report.MonthlyRevenue, error) {
	now := r.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(monthsBack - 1), 0)

	var invoiceRows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Select("id", "created_at", "total_amount").
		Where("created_at >= ? AND status <> ?", start, string(finance.InvoiceStatusCancelled)).
		Find(&invoiceRows).Error; err != nil {
		return nil, fmt.Errorf("failed to read monthly revenue: %w", err)
	}
	var paymentRows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Select("id", "payment_date", "amount").
		Where("payment_date >= ? AND status = ?", start, string(finance.PaymentCompleted)).
		Find(&paymentRows).Error; err != nil {
		return nil, fmt.Errorf("failed to read monthly revenue: %w", err)
	}

	series := make([]report.MonthlyRevenue, monthsBack)
	index := make(map[string]int, monthsBack)
	for i := range series {
		label := start.AddDate(0, i, 0).Format(monthLayout)
		series[i] = report.MonthlyRevenue{MonthYear: label, Revenue: decimal.Zero, Payments: decimal.Zero}
		index[label] = i
	}
	for _, row := range invoiceRows {
		if i, ok := index[row.CreatedAt.In(now.Location()).Format(monthLayout)]; ok {
			series[i].Revenue = series[i].Revenue.Add(row.TotalAmount)
		}
	}
	for _, row := range paymentRows {
		if i, ok := index[row.PaymentDate.In(now.Location()).Format(monthLayout)]; ok {
			series[i].Payments = series[i].Payments.Add(row.Amount)
		}
	}
	return series, nil
}

type topClientRow struct {
	ClientID      uuid.UUID       `gorm:"column:client_id"`
	ClientName    string          `gorm:"column:client_name"`
	ClientCompany string          `gorm:"column:client_company"`
	TotalRevenue  decimal.Decimal `gorm:"column:total_revenue"`
	InvoiceCount  int             `gorm:"column:invoice_count"`
	PaidAmount    decimal.Decimal `gorm:"column:paid_amount"`
}

// TopClients returns the clients with the highest revenue
func (r *GormReportRepository) TopClients(ctx context.Context, limit int) ([]report.TopClient, error) {
	if limit <= 0 {
		limit = report.TopClientsLimit
	}

	var rows []topClientRow
	var err error
	if r.postgres() {
		err = r.db.WithContext(ctx).
			Raw("SELECT client_id, client_name, client_company, total_revenue, invoice_count, paid_amount FROM get_top_clients(?)", limit).
			Scan(&rows).Error
	} else {
		err = r.db.WithContext(ctx).Table("clients").
			Select("clients.id AS client_id, clients.name AS client_name, clients.company AS client_company, " +
				"COALESCE(SUM(invoices.total_amount), 0) AS total_revenue, COUNT(invoices.id) AS invoice_count, " +
				"COALESCE(SUM(invoices.paid_amount), 0) AS paid_amount").
			Joins("JOIN invoices ON invoices.client_id = clients.id").
			Group("clients.id, clients.name, clients.company").
			Scan(&rows).Error
		// sqlite sums decimals as floats; order in Go to keep decimal comparison exact
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].TotalRevenue.GreaterThan(rows[j].TotalRevenue)
		})
		if len(rows) > limit {
			rows = rows[:limit]
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read top clients: %w", err)
	}

	out := make([]report.TopClient, len(rows))
	for i, row := range rows {
		out[i] = report.TopClient(row)
	}
	return out, nil
}

// Ensure GormReportRepository implements Reader
var _ report.Reader = (*GormReportRepository)(nil)
