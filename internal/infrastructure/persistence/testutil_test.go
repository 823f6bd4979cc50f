package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every connection to :memory: opens a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	v := date(y, m, d)
	return &v
}

type fixture struct {
	acme, globex finance.Client
	inv1, inv2   *finance.Invoice
	inv3         *finance.Invoice
}

// seedFixture inserts two clients, three invoices and three payments.
func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		acme:   finance.Client{ID: uuid.New(), Name: "Siti Aminah", Company: "PT Acme Indonesia", Email: "siti@acme.co.id", Status: finance.ClientStatusActive},
		globex: finance.Client{ID: uuid.New(), Name: "Budi Santoso", Company: "Globex", Email: "budi@globex.com", Status: finance.ClientStatusActive},
	}
	for _, c := range []finance.Client{f.acme, f.globex} {
		require.NoError(t, db.Exec(
			"INSERT INTO clients (id, name, company, email, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Company, c.Email, string(c.Status), date(2023, 12, 1), date(2023, 12, 1),
		).Error)
	}

	invoices := NewGormInvoiceRepository(db)
	f.inv1 = &finance.Invoice{
		InvoiceNumber: "INV-2024-001",
		Title:         "Website redesign",
		Client:        f.acme.Ref(),
		IssueDate:     datePtr(2024, 1, 10),
		DueDate:       datePtr(2024, 2, 10),
		Status:        finance.InvoiceStatusSent,
		Amount:        decimal.NewFromInt(10000000),
		TaxRate:       decimal.NewFromInt(11),
		PaidAmount:    decimal.NewFromInt(5000000),
		Currency:      "IDR",
		CreatedAt:     date(2024, 1, 10),
	}
	f.inv2 = &finance.Invoice{
		InvoiceNumber: "INV-2024-002",
		Title:         "Hosting",
		Client:        f.globex.Ref(),
		IssueDate:     datePtr(2024, 1, 20),
		Status:        finance.InvoiceStatusPaid,
		Amount:        decimal.NewFromInt(2000000),
		PaidAmount:    decimal.NewFromInt(2000000),
		CreatedAt:     date(2024, 1, 20),
	}
	f.inv3 = &finance.Invoice{
		InvoiceNumber: "INV-2024-003",
		Title:         "Maintenance retainer",
		Client:        f.acme.Ref(),
		Status:        finance.InvoiceStatusDraft,
		Amount:        decimal.NewFromInt(3000000),
		CreatedAt:     date(2024, 2, 5),
	}
	for _, inv := range []*finance.Invoice{f.inv1, f.inv2, f.inv3} {
		require.NoError(t, invoices.Save(ctx, inv))
	}

	payments := NewGormPaymentRepository(db)
	for _, p := range []finance.Payment{
		{PaymentNumber: "PAY-001", InvoiceID: f.inv1.ID, Amount: decimal.NewFromInt(5000000), Method: finance.PaymentMethodBankTransfer, PaymentDate: date(2024, 1, 15), Status: finance.PaymentCompleted},
		{PaymentNumber: "PAY-002", InvoiceID: f.inv2.ID, Amount: decimal.NewFromInt(2000000), Method: finance.PaymentMethodCash, PaymentDate: date(2024, 1, 25), Status: finance.PaymentCompleted},
		{PaymentNumber: "PAY-003", InvoiceID: f.inv1.ID, Amount: decimal.NewFromInt(100000), Method: finance.PaymentMethodBankTransfer, PaymentDate: date(2024, 2, 2), Status: finance.PaymentPending},
	} {
		p := p
		require.NoError(t, payments.Save(ctx, &p))
	}

	return f
}
