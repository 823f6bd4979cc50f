package export_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockInvoiceReader struct {
	mock.Mock
}

func (m *MockInvoiceReader) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceReader) List(ctx context.Context, filter finance.InvoiceFilter) ([]finance.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceReader) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]finance.Invoice, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

type MockPaymentReader struct {
	mock.Mock
}

func (m *MockPaymentReader) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentReader) FindPaidBetween(ctx context.Context, from, to time.Time) ([]finance.Payment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentReader) List(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.Payment), args.Get(1).(int64), args.Error(2)
}

type MockReportReader struct {
	mock.Mock
}

func (m *MockReportReader) FinancialMetrics(ctx context.Context) (*finance.FinancialMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialMetrics), args.Error(1)
}

func (m *MockReportReader) MonthlyRevenue(ctx context.Context, monthsBack int) ([]report.MonthlyRevenue, error) {
	args := m.Called(ctx, monthsBack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.MonthlyRevenue), args.Error(1)
}

func (m *MockReportReader) TopClients(ctx context.Context, limit int) ([]report.TopClient, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TopClient), args.Error(1)
}

type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) EncodeDocument(ctx context.Context, format report.ExportFormat, doc *document.Document) ([]byte, string, error) {
	args := m.Called(ctx, format, doc)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockObjectStorage) PublicURL(key string) string {
	return m.Called(key).String(0)
}

type MockInvoiceFileRepository struct {
	mock.Mock
}

func (m *MockInvoiceFileRepository) Save(ctx context.Context, file *finance.InvoiceFile) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockInvoiceFileRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]finance.InvoiceFile, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.InvoiceFile), args.Error(1)
}

type MockFileSink struct {
	mock.Mock
}

func (m *MockFileSink) Emit(ctx context.Context, fileName, contentType string, data []byte) error {
	return m.Called(ctx, fileName, contentType, data).Error(0)
}

type MockWindowOpener struct {
	mock.Mock
}

func (m *MockWindowOpener) Open(ctx context.Context, a *exportapp.Artifact) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

// mapCache is a DocumentCache backed by a map
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}
