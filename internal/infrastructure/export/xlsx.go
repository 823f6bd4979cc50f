package export

import (
	"context"
	"regexp"
	"strings"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

var plainNumber = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// numericColumns are the amount and count columns written as numbers.
// Every other column stays text so identifiers keep leading zeros.
var numericColumns = map[string]bool{
	"Amount":        true,
	"Tax Amount":    true,
	"Total Amount":  true,
	"Paid Amount":   true,
	"Remaining":     true,
	"Total Revenue": true,
	"Invoice Count": true,
	"Revenue":       true,
	"Payments":      true,
}

// XLSXEncoder writes the tabular records of a document as a native spreadsheet
type XLSXEncoder struct{}

// NewXLSXEncoder creates the spreadsheet encoder
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

// Format returns the excel format
func (e *XLSXEncoder) Format() report.ExportFormat {
	return report.FormatExcel
}

// Encode streams the header row and the records into a single sheet.
// Amount and count columns are written as numbers so the spreadsheet can sum them.
func (e *XLSXEncoder) Encode(ctx context.Context, doc *document.Document) (*Output, error) {
	if !doc.HasTabularLayout() {
		return nil, &UnsupportedExportError{Format: report.FormatExcel, Reference: doc.Reference}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(doc.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F3F4F6"}},
	})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]any, len(doc.Records.Columns))
	for i, c := range doc.Records.Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i, record := range doc.Records.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(record))
		for j, v := range record {
			column := ""
			if j < len(doc.Records.Columns) {
				column = doc.Records.Columns[j]
			}
			values[j] = cellValue(column, v)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &Output{
		Data:        buf.Bytes(),
		ContentType: report.ContentTypeExcel,
		Extension:   report.FormatExcel.Extension(),
	}, nil
}

// cellValue turns plain values of amount and count columns into numbers; the rest stays text
func cellValue(column, v string) any {
	if !numericColumns[column] || !plainNumber.MatchString(v) {
		return v
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return v
	}
	return d.InexactFloat64()
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Sheet1"
	}
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return name
}

var _ Encoder = (*XLSXEncoder)(nil)
