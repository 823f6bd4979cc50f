package export

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
)

// CSVEncoder writes the tabular records of a document as comma-separated text.
// Fields containing a separator, quote or newline are quoted and embedded quotes doubled.
type CSVEncoder struct {
	format      report.ExportFormat
	contentType string
}

// NewCSVEncoder creates the csv encoder
func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{format: report.FormatCSV, contentType: report.ContentTypeCSV}
}

// NewExcelAliasEncoder serves the excel format with csv bytes under the spreadsheet content type
func NewExcelAliasEncoder() *CSVEncoder {
	return &CSVEncoder{format: report.FormatExcel, contentType: report.ContentTypeExcel}
}

// Format returns the format served by the encoder
func (e *CSVEncoder) Format() report.ExportFormat {
	return e.format
}

// Encode writes the header row followed by one row per record
func (e *CSVEncoder) Encode(ctx context.Context, doc *document.Document) (*Output, error) {
	if !doc.HasTabularLayout() {
		return nil, &UnsupportedExportError{Format: e.format, Reference: doc.Reference}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(doc.Records.Columns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(doc.Records.Rows); err != nil {
		return nil, err
	}

	return &Output{
		Data:        buf.Bytes(),
		ContentType: e.contentType,
		Extension:   e.format.Extension(),
	}, nil
}

var _ Encoder = (*CSVEncoder)(nil)
