package export

import (
	"context"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/infrastructure/printing"
)

// HTMLEncoder produces the printable markup of a document
type HTMLEncoder struct {
	engine *printing.TemplateEngine
}

// NewHTMLEncoder creates the markup encoder
func NewHTMLEncoder(engine *printing.TemplateEngine) *HTMLEncoder {
	return &HTMLEncoder{engine: engine}
}

// Format returns the html format
func (e *HTMLEncoder) Format() report.ExportFormat {
	return report.FormatHTML
}

// Encode renders the document into a self-contained HTML page
func (e *HTMLEncoder) Encode(ctx context.Context, doc *document.Document) (*Output, error) {
	result, err := e.engine.Render(ctx, &printing.RenderTemplateRequest{Document: doc})
	if err != nil {
		return nil, err
	}
	return &Output{
		Data:        []byte(result.HTML),
		ContentType: report.ContentTypeHTML,
		Extension:   report.FormatHTML.Extension(),
	}, nil
}

var _ Encoder = (*HTMLEncoder)(nil)
