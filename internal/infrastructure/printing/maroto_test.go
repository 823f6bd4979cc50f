package printing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testInvoiceDocument(t *testing.T) *document.Document {
	t.Helper()
	total := decimal.NewFromInt(1110000)
	amount := decimal.NewFromInt(1000000)
	rate := decimal.NewFromInt(11)
	doc, err := document.BuildInvoice(document.InvoiceSnapshot{
		ID:            "inv-1",
		InvoiceNumber: "INV-2024-010",
		ClientName:    "Siti <Aminah>",
		Description:   "Server maintenance for March",
		Amount:        &amount,
		TaxRate:       &rate,
		TotalAmount:   &total,
		Terms:         "Net 14",
	}, document.DefaultBuildOptions(testNow))
	require.NoError(t, err)
	return doc
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{2, []int{6, 6}},
		{5, []int{3, 3, 2, 2, 2}},
		{8, []int{2, 2, 2, 2, 1, 1, 1, 1}},
		{12, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		got := columnWidths(tt.n)
		assert.Equal(t, tt.want, got)
		if tt.n > 0 {
			sum := 0
			for _, w := range got {
				sum += w
			}
			assert.Equal(t, gridSize, sum)
		}
	}
}

func TestMarotoRenderer_RenderInvoice(t *testing.T) {
	r := NewMarotoRenderer(nil)

	result, err := r.Render(context.Background(), &RenderRequest{Document: testInvoiceDocument(t)})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(result.PDFData, []byte("%PDF")))
	assert.Equal(t, 1, result.PageCount)
}

func TestMarotoRenderer_RenderReportTable(t *testing.T) {
	doc := &document.Document{
		Kind:  document.KindReport,
		Title: "Client Report",
		Page:  document.PageSetup{PaperSize: document.PaperSizeA4, Orientation: document.OrientationLandscape, Margins: document.DefaultMargins()},
		Sections: []document.Section{
			{Kind: document.SectionHeader, Title: "FINANCIAL REPORT", Fields: []document.Field{{Label: "Company", Value: "Sepur"}}},
			{Kind: document.SectionRows, Title: "Client Report", Table: &document.Table{
				Columns: []string{"Client Name", "Company", "Total Revenue", "Invoice Count", "Paid Amount"},
				Rows:    [][]string{{"Ani", "PT A", "Rp 900", "3"}},
			}},
			{Kind: document.SectionFooter, Fields: []document.Field{{Label: "Generated", Value: "Generated on 01/03/2024"}}},
		},
	}

	result, err := NewMarotoRenderer(nil).Render(context.Background(), &RenderRequest{Document: doc})
	require.NoError(t, err)
	assert.NotEmpty(t, result.PDFData)
}

func TestMarotoRenderer_RejectsInvalidRequests(t *testing.T) {
	r := NewMarotoRenderer(nil)

	_, err := r.Render(context.Background(), &RenderRequest{HTML: "<p>only html</p>"})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidDocument, renderErr.Code)

	_, err = r.Render(context.Background(), &RenderRequest{
		Document: &document.Document{},
		Page:     &document.PageSetup{PaperSize: "LETTER"},
	})
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
}

func TestMarotoRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarotoRenderer(nil).Render(ctx, &RenderRequest{Document: testInvoiceDocument(t)})
	// generation may win the race against an already-cancelled context
	if err != nil {
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
	}
}
