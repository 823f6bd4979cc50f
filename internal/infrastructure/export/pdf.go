package export

import (
	"context"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/infrastructure/printing"
)

// PDFEncoder produces paginated PDF bytes through a printing renderer.
// When a template engine is set, the printable markup is rendered first so
// browser-based renderers print exactly what the html format shows.
type PDFEncoder struct {
	renderer printing.PDFRenderer
	engine   *printing.TemplateEngine
}

// NewPDFEncoder creates the PDF encoder. engine may be nil for renderers that lay out the tree directly.
func NewPDFEncoder(renderer printing.PDFRenderer, engine *printing.TemplateEngine) *PDFEncoder {
	return &PDFEncoder{renderer: renderer, engine: engine}
}

// Format returns the pdf format
func (e *PDFEncoder) Format() report.ExportFormat {
	return report.FormatPDF
}

// Encode renders the document to PDF
func (e *PDFEncoder) Encode(ctx context.Context, doc *document.Document) (*Output, error) {
	req := &printing.RenderRequest{
		Document: doc,
		Title:    doc.Title + " " + doc.Reference,
	}
	if e.engine != nil {
		markup, err := e.engine.Render(ctx, &printing.RenderTemplateRequest{Document: doc})
		if err != nil {
			return nil, err
		}
		req.HTML = markup.HTML
	}

	result, err := e.renderer.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Output{
		Data:        result.PDFData,
		ContentType: report.ContentTypePDF,
		Extension:   report.FormatPDF.Extension(),
	}, nil
}

var _ Encoder = (*PDFEncoder)(nil)
