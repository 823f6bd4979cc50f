package export

import (
	"github.com/sepur/finance/internal/infrastructure/printing"
)

// Excel encodings
const (
	ExcelModeCSV  = "csv"
	ExcelModeXLSX = "xlsx"
)

// Config selects the encoders of the default registry
type Config struct {
	// ExcelMode is csv (csv bytes under the spreadsheet content type) or xlsx (native workbook)
	ExcelMode string
	// Renderer produces PDF bytes
	Renderer printing.PDFRenderer
	// Engine renders printable markup
	Engine *printing.TemplateEngine
	// PDFFromMarkup feeds the printable markup to the renderer, required by chromedp
	PDFFromMarkup bool
}

// NewDefaultRegistry registers pdf, excel, csv and html encoders
func NewDefaultRegistry(cfg Config) *Registry {
	excel := Encoder(NewExcelAliasEncoder())
	if cfg.ExcelMode == ExcelModeXLSX {
		excel = NewXLSXEncoder()
	}

	var pdfEngine *printing.TemplateEngine
	if cfg.PDFFromMarkup {
		pdfEngine = cfg.Engine
	}

	return NewRegistry(
		NewCSVEncoder(),
		excel,
		NewHTMLEncoder(cfg.Engine),
		NewPDFEncoder(cfg.Renderer, pdfEngine),
	)
}
