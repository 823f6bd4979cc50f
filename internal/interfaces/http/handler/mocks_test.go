package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	exportinfra "github.com/sepur/finance/internal/infrastructure/export"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var handlerTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

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

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// stubEncoder encodes csv for real and returns fixed bytes for pdf and markup
type stubEncoder struct {
	csv *exportinfra.Registry
}

func newStubEncoder() *stubEncoder {
	return &stubEncoder{csv: exportinfra.NewRegistry(exportinfra.NewCSVEncoder())}
}

func (e *stubEncoder) EncodeDocument(ctx context.Context, f report.ExportFormat, doc *document.Document) ([]byte, string, error) {
	switch f {
	case report.FormatPDF:
		return []byte("%PDF-1.4 " + doc.Reference), report.ContentTypePDF, nil
	case report.FormatHTML:
		return []byte("<html><body><h1>" + doc.Reference + "</h1></body></html>"), report.ContentTypeHTML, nil
	}
	return e.csv.EncodeDocument(ctx, f, doc)
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
