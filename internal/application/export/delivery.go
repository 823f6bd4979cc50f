package export

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Action names a delivery variant
type Action string

const (
	ActionDownload Action = "download"
	ActionPreview  Action = "preview"
	ActionPrint    Action = "print"
	ActionUpload   Action = "upload"
)

// DeliveryResult describes where the bytes went
type DeliveryResult struct {
	Action   Action `json:"action"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path,omitempty"`
	URL      string `json:"url,omitempty"`
	Size     int64  `json:"size"`
	// MetadataRecorded is false when the upload succeeded but its metadata row could not be written
	MetadataRecorded bool `json:"metadata_recorded,omitempty"`
}

// Delivery hands an artifact to the caller environment. Every call is at most once.
type Delivery interface {
	Deliver(ctx context.Context, a *Artifact) (*DeliveryResult, error)
}

// FileSink emits a file the caller saves, such as an attachment response or a file on disk
type FileSink interface {
	Emit(ctx context.Context, fileName, contentType string, data []byte) error
}

// WindowOpener shows bytes in a new viewing context. It returns false when the
// context could not be opened.
type WindowOpener interface {
	Open(ctx context.Context, a *Artifact) (bool, error)
}

// PopupBlockedError is returned when the preview window could not be opened
type PopupBlockedError struct {
	FileName string
}

func (e *PopupBlockedError) Error() string {
	return shared.ErrPopupBlocked.Message
}

// Is makes the error match shared.ErrPopupBlocked
func (e *PopupBlockedError) Is(target error) bool {
	return errors.Is(shared.ErrPopupBlocked, target)
}

// DownloadDelivery emits the artifact as a saved file
type DownloadDelivery struct {
	sink FileSink
}

// NewDownloadDelivery creates a download delivery writing to sink
func NewDownloadDelivery(sink FileSink) *DownloadDelivery {
	return &DownloadDelivery{sink: sink}
}

// Deliver implements Delivery
func (d *DownloadDelivery) Deliver(ctx context.Context, a *Artifact) (*DeliveryResult, error) {
	if err := d.sink.Emit(ctx, a.FileName, a.ContentType, a.Data); err != nil {
		return nil, err
	}
	return &DeliveryResult{Action: ActionDownload, FileName: a.FileName, Size: a.Size()}, nil
}

// PreviewDelivery opens the artifact for viewing instead of saving it
type PreviewDelivery struct {
	opener WindowOpener
}

// NewPreviewDelivery creates a preview delivery
func NewPreviewDelivery(opener WindowOpener) *PreviewDelivery {
	return &PreviewDelivery{opener: opener}
}

// Deliver implements Delivery. A blocked window yields PopupBlockedError.
func (d *PreviewDelivery) Deliver(ctx context.Context, a *Artifact) (*DeliveryResult, error) {
	opened, err := d.opener.Open(ctx, a)
	if err != nil {
		return nil, err
	}
	if !opened {
		return nil, &PopupBlockedError{FileName: a.FileName}
	}
	return &DeliveryResult{Action: ActionPreview, FileName: a.FileName, Size: a.Size()}, nil
}

var printScript = []byte(`<script>window.addEventListener("load",function(){window.print()});</script>`)

// PrintDelivery opens printable markup with the print dialog triggered on load
type PrintDelivery struct {
	opener WindowOpener
}

// NewPrintDelivery creates a print delivery
func NewPrintDelivery(opener WindowOpener) *PrintDelivery {
	return &PrintDelivery{opener: opener}
}

// Deliver implements Delivery. Only printable markup can be printed.
func (d *PrintDelivery) Deliver(ctx context.Context, a *Artifact) (*DeliveryResult, error) {
	if a.Format != report.FormatHTML {
		return nil, shared.NewDomainError(shared.ErrCodeUnsupportedExport, "Only printable markup can be printed")
	}

	printable := *a
	printable.Data = withPrintScript(a.Data)
	opened, err := d.opener.Open(ctx, &printable)
	if err != nil {
		return nil, err
	}
	if !opened {
		return nil, &PopupBlockedError{FileName: a.FileName}
	}
	return &DeliveryResult{Action: ActionPrint, FileName: a.FileName, Size: printable.Size()}, nil
}

func withPrintScript(markup []byte) []byte {
	i := bytes.LastIndex(markup, []byte("</body>"))
	if i < 0 {
		return append(append([]byte{}, markup...), printScript...)
	}
	out := make([]byte, 0, len(markup)+len(printScript))
	out = append(out, markup[:i]...)
	out = append(out, printScript...)
	return append(out, markup[i:]...)
}

// UploadDelivery writes the artifact to object storage and records a metadata row.
// A failed metadata write is logged and does not fail the upload.
type UploadDelivery struct {
	storage ObjectStorage
	files   finance.InvoiceFileRepository
	metrics *telemetry.DocumentMetrics
	now     func() time.Time
}

// UploadOption configures an UploadDelivery
type UploadOption func(*UploadDelivery)

// WithUploadClock overrides the clock used for file name suffixes
func WithUploadClock(now func() time.Time) UploadOption {
	return func(d *UploadDelivery) { d.now = now }
}

// WithUploadMetrics records upload counts and durations
func WithUploadMetrics(m *telemetry.DocumentMetrics) UploadOption {
	return func(d *UploadDelivery) { d.metrics = m }
}

// NewUploadDelivery creates an upload delivery. files may be nil to skip metadata.
func NewUploadDelivery(storage ObjectStorage, files finance.InvoiceFileRepository, opts ...UploadOption) *UploadDelivery {
	d := &UploadDelivery{storage: storage, files: files, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver implements Delivery
func (d *UploadDelivery) Deliver(ctx context.Context, a *Artifact) (*DeliveryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "upload")
	defer span.End()

	now := d.now()
	fileName := UploadFileName(a.InvoiceNumber, now)
	path := UploadPath(a.InvoiceID, fileName)
	telemetry.SetAttributes(span, telemetry.SpanAttrObjectKey, path, telemetry.SpanAttrSize, len(a.Data))

	start := time.Now()
	err := d.storage.Upload(ctx, path, a.Data, report.ContentTypePDF)
	d.metrics.RecordUpload(ctx, time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Document upload failed",
			zap.String("object_key", path),
			zap.String("invoice_number", a.InvoiceNumber),
			zap.Error(err))
		return nil, shared.WrapDomainError(shared.ErrCodeUpload, "Upload failed", err)
	}

	result := &DeliveryResult{
		Action:   ActionUpload,
		FileName: fileName,
		FilePath: path,
		URL:      d.storage.PublicURL(path),
		Size:     a.Size(),
	}
	if d.files == nil {
		return result, nil
	}

	file := &finance.InvoiceFile{
		InvoiceID: a.InvoiceID,
		FileName:  fileName,
		FilePath:  path,
		FileURL:   result.URL,
		FileType:  "pdf",
		FileSize:  result.Size,
		CreatedAt: now,
	}
	if err := d.files.Save(ctx, file); err != nil {
		logger.L(ctx).Warn("Failed to save file metadata",
			zap.String("code", shared.ErrCodeMetadataWrite),
			zap.String("object_key", path),
			zap.Error(err))
		return result, nil
	}
	result.MetadataRecorded = true
	return result, nil
}

var (
	_ Delivery = (*DownloadDelivery)(nil)
	_ Delivery = (*PreviewDelivery)(nil)
	_ Delivery = (*PrintDelivery)(nil)
	_ Delivery = (*UploadDelivery)(nil)
)
