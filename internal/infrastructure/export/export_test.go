package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func buildReport(t *testing.T, b report.Bundle) *document.Document {
	t.Helper()
	doc, err := document.BuildReport(b, document.DefaultBuildOptions(testNow))
	require.NoError(t, err)
	return doc
}

func trickyInvoices() []finance.Invoice {
	issue := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []finance.Invoice{
		{
			InvoiceNumber: "INV-1", Title: `Design, "phase 1"`, Client: finance.ClientRef{Name: "Ani\nBudi"},
			IssueDate: &issue, Status: finance.InvoiceStatusSent, PaymentStatus: finance.PaymentStatusPartial,
			Amount: decimal.NewFromInt(1000), TaxAmount: decimal.NewFromInt(110), TotalAmount: decimal.NewFromInt(1110),
			PaidAmount: decimal.NewFromInt(500), RemainingAmount: decimal.NewFromInt(610),
		},
		{
			InvoiceNumber: "INV-2", Title: "Plain", Client: finance.ClientRef{Name: "Citra"},
			Status: finance.InvoiceStatusDraft, PaymentStatus: finance.PaymentStatusUnpaid,
			Amount: decimal.RequireFromString("99.5"), TotalAmount: decimal.RequireFromString("99.5"),
			RemainingAmount: decimal.RequireFromString("99.5"),
		},
	}
}

func TestCSVEncoder_HeaderRowPerReportType(t *testing.T) {
	tests := []struct {
		name    string
		bundle  report.Bundle
		columns []string
	}{
		{"invoice report", report.Bundle{Type: report.TypeInvoiceReport}, []string{
			"Invoice Number", "Title", "Client", "Amount", "Tax Amount", "Total Amount",
			"Paid Amount", "Remaining", "Status", "Payment Status", "Issue Date", "Due Date",
		}},
		{"payment report", report.Bundle{Type: report.TypePaymentReport}, []string{
			"Payment Number", "Invoice Number", "Client", "Amount", "Payment Method",
			"Payment Date", "Reference Number", "Status",
		}},
		{"client report", report.Bundle{Type: report.TypeClientReport}, []string{
			"Client Name", "Company", "Total Revenue", "Invoice Count", "Paid Amount",
		}},
		{"monthly analysis", report.Bundle{Type: report.TypeMonthlyAnalysis}, []string{"Month", "Revenue", "Payments"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewCSVEncoder().Encode(context.Background(), buildReport(t, tt.bundle))
			require.NoError(t, err)

			rows, err := csv.NewReader(bytes.NewReader(out.Data)).ReadAll()
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.columns, rows[0])
			assert.Equal(t, "text/csv", out.ContentType)
			assert.Equal(t, "csv", out.Extension)
		})
	}
}

func TestCSVEncoder_EscapingRoundTrip(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeInvoiceReport, Invoices: trickyInvoices()})

	out, err := NewCSVEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, string(out.Data), `"Design, ""phase 1"""`)

	rows, err := csv.NewReader(bytes.NewReader(out.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, doc.Records.Rows[0], rows[1])
	assert.Equal(t, doc.Records.Rows[1], rows[2])
	assert.Equal(t, `Design, "phase 1"`, rows[1][1])
	assert.Equal(t, "Ani\nBudi", rows[1][2])
	assert.Equal(t, "99.5", rows[2][3])
}

func TestCSVEncoder_FinancialSummaryIsUnsupported(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeFinancialSummary, Metrics: &finance.FinancialMetrics{}})

	for _, enc := range []Encoder{NewCSVEncoder(), NewExcelAliasEncoder(), NewXLSXEncoder()} {
		_, err := enc.Encode(context.Background(), doc)
		var unsupported *UnsupportedExportError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, enc.Format(), unsupported.Format)
		assert.ErrorIs(t, err, shared.ErrUnsupportedExport)
	}
}

func TestExcelAliasEncoder(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeInvoiceReport, Invoices: trickyInvoices()})

	csvOut, err := NewCSVEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)
	excelOut, err := NewExcelAliasEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, csvOut.Data, excelOut.Data)
	assert.Equal(t, report.ContentTypeExcel, excelOut.ContentType)
	assert.Equal(t, "xlsx", excelOut.Extension)
}

func TestXLSXEncoder(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeInvoiceReport, Invoices: trickyInvoices()})

	out, err := NewXLSXEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoice Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, document.InvoiceReportColumns, rows[0])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, `Design, "phase 1"`, rows[1][1])
	assert.Equal(t, "1110", rows[1][5])
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
		want   any
	}{
		{"amount", "Amount", "1500.25", 1500.25},
		{"negative remaining", "Remaining", "-3", -3.0},
		{"count", "Invoice Count", "3", 3.0},
		{"non numeric amount stays text", "Amount", "n/a", "n/a"},
		{"date", "Issue Date", "2024-01-10", "2024-01-10"},
		{"invoice number", "Invoice Number", "INV-1", "INV-1"},
		{"numeric reference keeps leading zeros", "Reference Number", "000123", "000123"},
		{"numeric payment number stays text", "Payment Number", "42", "42"},
		{"single invoice value column stays text", "Value", "0042", "0042"},
		{"empty", "Amount", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellValue(tt.column, tt.value))
		})
	}
}

func TestXLSXEncoder_KeepsNumericIdentifiers(t *testing.T) {
	payDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	doc := buildReport(t, report.Bundle{Type: report.TypePaymentReport, Payments: []finance.Payment{{
		PaymentNumber: "0007", InvoiceNumber: "INV-1", ClientName: "Ani", Amount: decimal.NewFromInt(500),
		Method: finance.PaymentMethodBankTransfer, PaymentDate: payDate, ReferenceNumber: "000123",
		Status: finance.PaymentCompleted,
	}}})

	out, err := NewXLSXEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName(doc.Title))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, document.PaymentReportColumns, rows[0])
	assert.Equal(t, "0007", rows[1][0])
	assert.Equal(t, "000123", rows[1][6])
	assert.Equal(t, "500", rows[1][3])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName("  "))
	assert.Equal(t, "Q1Report Final", sheetName("Q1/Report: Final"))
	assert.Len(t, []rune(sheetName("A very long report title that exceeds the limit")), maxSheetNameLen)
}

type fakeRenderer struct {
	mu   sync.Mutex
	reqs []*printing.RenderRequest
	err  error
}

func (f *fakeRenderer) Render(_ context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &printing.RenderResult{PDFData: []byte("%PDF-1.4 " + req.Document.Reference), PageCount: 1}, nil
}

func (f *fakeRenderer) Close() error { return nil }

func newEngine(t *testing.T) *printing.TemplateEngine {
	t.Helper()
	engine, err := printing.NewTemplateEngine()
	require.NoError(t, err)
	return engine
}

func TestPDFEncoder(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeClientReport})

	t.Run("tree renderer", func(t *testing.T) {
		r := &fakeRenderer{}
		out, err := NewPDFEncoder(r, nil).Encode(context.Background(), doc)
		require.NoError(t, err)

		assert.Equal(t, "application/pdf", out.ContentType)
		assert.Equal(t, "pdf", out.Extension)
		require.Len(t, r.reqs, 1)
		assert.Same(t, doc, r.reqs[0].Document)
		assert.Empty(t, r.reqs[0].HTML)
	})

	t.Run("markup renderer", func(t *testing.T) {
		r := &fakeRenderer{}
		_, err := NewPDFEncoder(r, newEngine(t)).Encode(context.Background(), doc)
		require.NoError(t, err)
		assert.Contains(t, r.reqs[0].HTML, "Client Report")
	})

	t.Run("renderer failure", func(t *testing.T) {
		r := &fakeRenderer{err: printing.NewRenderError(printing.ErrCodeRenderFailed, "boom", nil)}
		_, err := NewPDFEncoder(r, nil).Encode(context.Background(), doc)
		assert.True(t, errors.Is(err, shared.ErrRender))
	})
}

func TestHTMLEncoder(t *testing.T) {
	doc := buildReport(t, report.Bundle{Type: report.TypeFinancialSummary, Metrics: &finance.FinancialMetrics{}})

	out, err := NewHTMLEncoder(newEngine(t)).Encode(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", out.ContentType)
	assert.Contains(t, string(out.Data), "Key Metrics")
}

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry(Config{Renderer: &fakeRenderer{}, Engine: newEngine(t)})
	assert.ElementsMatch(t, []report.ExportFormat{report.FormatPDF, report.FormatExcel, report.FormatCSV, report.FormatHTML}, reg.Formats())

	excel, ok := reg.Lookup(report.FormatExcel)
	require.True(t, ok)
	assert.IsType(t, &CSVEncoder{}, excel)

	xlsx := NewDefaultRegistry(Config{ExcelMode: ExcelModeXLSX, Renderer: &fakeRenderer{}, Engine: newEngine(t)})
	excel, _ = xlsx.Lookup(report.FormatExcel)
	assert.IsType(t, &XLSXEncoder{}, excel)

	doc := buildReport(t, report.Bundle{Type: report.TypeClientReport})
	_, err := reg.Encode(context.Background(), "docx", doc)
	var unsupported *UnsupportedExportError
	require.ErrorAs(t, err, &unsupported)

	_, err = reg.Encode(context.Background(), report.FormatCSV, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
