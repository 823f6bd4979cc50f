package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/report"
)

// Artifact is one encoded document ready for delivery
type Artifact struct {
	Data        []byte
	ContentType string
	Format      report.ExportFormat
	FileName    string
	// InvoiceID and InvoiceNumber are set for single invoice documents
	InvoiceID     *uuid.UUID
	InvoiceNumber string
}

// Size returns the number of bytes
func (a *Artifact) Size() int64 {
	return int64(len(a.Data))
}

// ReportFileName returns <reportType>_<YYYY-MM-DD>.<ext>
func ReportFileName(t report.ReportType, f report.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", t, now.Format(time.DateOnly), f.Extension())
}

// InvoiceFileName returns invoice-<number|draft>.<ext>
func InvoiceFileName(number string, f report.ExportFormat) string {
	return fmt.Sprintf("invoice-%s.%s", numberOrDraft(number), f.Extension())
}

// UploadFileName returns invoice-<number|draft>-<unixMillis>.pdf
func UploadFileName(number string, now time.Time) string {
	return fmt.Sprintf("invoice-%s-%d.pdf", numberOrDraft(number), now.UnixMilli())
}

// UploadPath returns invoices/<invoiceId|unknown>/<fileName>
func UploadPath(invoiceID *uuid.UUID, fileName string) string {
	dir := "unknown"
	if invoiceID != nil && *invoiceID != uuid.Nil {
		dir = invoiceID.String()
	}
	return "invoices/" + dir + "/" + fileName
}

func numberOrDraft(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return "draft"
	}
	// keep object keys and download names free of path separators
	return strings.NewReplacer("/", "-", "\\", "-").Replace(number)
}
