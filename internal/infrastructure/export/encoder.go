// Package export serializes document trees into downloadable byte formats.
package export

import (
	"context"
	"errors"
	"fmt"

	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
)

// Output is one encoded document
type Output struct {
	Data        []byte
	ContentType string
	// Extension is the file extension without the dot
	Extension string
}

// Size returns the number of encoded bytes
func (o *Output) Size() int64 {
	return int64(len(o.Data))
}

// Encoder turns a document tree into bytes of one format.
// Implementations hold no per-call state and are safe for concurrent use.
type Encoder interface {
	Format() report.ExportFormat
	Encode(ctx context.Context, doc *document.Document) (*Output, error)
}

// UnsupportedExportError is returned when a document cannot be encoded in the requested format
type UnsupportedExportError struct {
	Format    report.ExportFormat
	Reference string
}

func (e *UnsupportedExportError) Error() string {
	if e.Reference == "" {
		return fmt.Sprintf("unsupported export format %q", e.Format)
	}
	return fmt.Sprintf("%s cannot be exported as %s", e.Reference, e.Format)
}

// Is makes the error match shared.ErrUnsupportedExport
func (e *UnsupportedExportError) Is(target error) bool {
	var de *shared.DomainError
	return errors.As(target, &de) && de.Code == shared.ErrCodeUnsupportedExport
}

// Registry dispatches documents to the encoder of the requested format
type Registry struct {
	encoders map[report.ExportFormat]Encoder
}

// NewRegistry creates a registry; a later encoder replaces an earlier one of the same format
func NewRegistry(encoders ...Encoder) *Registry {
	r := &Registry{encoders: make(map[report.ExportFormat]Encoder, len(encoders))}
	for _, e := range encoders {
		r.encoders[e.Format()] = e
	}
	return r
}

// Lookup returns the encoder registered for the format
func (r *Registry) Lookup(format report.ExportFormat) (Encoder, bool) {
	e, ok := r.encoders[format]
	return e, ok
}

// Formats lists the registered formats
func (r *Registry) Formats() []report.ExportFormat {
	formats := make([]report.ExportFormat, 0, len(r.encoders))
	for f := range r.encoders {
		formats = append(formats, f)
	}
	return formats
}

// Encode encodes the document in the requested format
func (r *Registry) Encode(ctx context.Context, format report.ExportFormat, doc *document.Document) (*Output, error) {
	if doc == nil {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidInput, "document is nil")
	}
	e, ok := r.encoders[format]
	if !ok {
		return nil, &UnsupportedExportError{Format: format, Reference: doc.Reference}
	}
	return e.Encode(ctx, doc)
}

// EncodeDocument implements the application encoder port
func (r *Registry) EncodeDocument(ctx context.Context, format report.ExportFormat, doc *document.Document) ([]byte, string, error) {
	out, err := r.Encode(ctx, format, doc)
	if err != nil {
		return nil, "", err
	}
	return out.Data, out.ContentType, nil
}

var _ exportapp.Encoder = (*Registry)(nil)
