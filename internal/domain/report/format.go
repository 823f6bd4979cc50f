package report

import (
	"strings"

	"github.com/sepur/finance/internal/domain/shared"
)

// ExportFormat is the byte encoding requested for a report or invoice
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
	FormatHTML  ExportFormat = "html"
)

// Content types per format
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV   = "text/csv"
	ContentTypeHTML  = "text/html; charset=utf-8"
)

// IsValid checks if the format is known
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatPDF, FormatExcel, FormatCSV, FormatHTML:
		return true
	}
	return false
}

// IsTabular reports whether the format is encoded as rows and columns
func (f ExportFormat) IsTabular() bool {
	return f == FormatCSV || f == FormatExcel
}

// Extension returns the file extension without the dot
func (f ExportFormat) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	default:
		return string(f)
	}
}

// ContentType returns the declared MIME type
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return ContentTypePDF
	case FormatExcel:
		return ContentTypeExcel
	case FormatCSV:
		return ContentTypeCSV
	case FormatHTML:
		return ContentTypeHTML
	}
	return "application/octet-stream"
}

// ParseExportFormat validates the format of a report export request. Only pdf, excel and csv are accepted.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.TrimSpace(s))
	switch f {
	case FormatPDF, FormatExcel, FormatCSV:
		return f, nil
	}
	return "", shared.NewDomainError(shared.ErrCodeValidation, "Invalid export type")
}

// ParseDocumentFormat validates the format of a single invoice document. Printable markup is allowed here.
func ParseDocumentFormat(s string) (ExportFormat, error) {
	if strings.TrimSpace(s) == "" {
		return FormatPDF, nil
	}
	f := ExportFormat(strings.TrimSpace(s))
	switch f {
	case FormatPDF, FormatCSV, FormatHTML:
		return f, nil
	}
	return "", shared.NewDomainError(shared.ErrCodeValidation, "Invalid export type")
}
