//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/migration"
	"github.com/sepur/finance/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a PostgreSQL container and applies the embedded migrations
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("finance_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, migrations.FS, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgres_Repositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupPostgres(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	t.Run("invoice lookup", func(t *testing.T) {
		inv, err := NewGormInvoiceRepository(db).FindByID(ctx, f.inv1.ID)
		require.NoError(t, err)
		assert.Equal(t, "PT Acme Indonesia", inv.Client.Company)
		assert.True(t, decimal.NewFromInt(11100000).Equal(inv.TotalAmount))
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		invoices, total, err := NewGormInvoiceRepository(db).List(ctx, invoiceSearch("globex"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), total, "search matches client name, not company")
		assert.Empty(t, invoices)
	})

	t.Run("report view and functions", func(t *testing.T) {
		reports := NewGormReportRepository(db)

		m, err := reports.FinancialMetrics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, m.TotalInvoices)
		assert.Equal(t, 1, m.PaidInvoices)

		series, err := reports.MonthlyRevenue(ctx, 12)
		require.NoError(t, err)
		assert.Len(t, series, 12)

		clients, err := reports.TopClients(ctx, 10)
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Siti Aminah", clients[0].ClientName)
	})
}

func invoiceSearch(term string) finance.InvoiceFilter {
	return finance.InvoiceFilter{Filter: shared.Filter{Page: 1, PageSize: 20, Search: term}}
}
