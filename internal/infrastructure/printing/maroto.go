package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sepur/finance/internal/domain/document"
	"go.uber.org/zap"
)

const (
	gridSize             = 12
	defaultMarotoTimeout = 15 * time.Second
	charsPerTextLine     = 95
)

// MarotoConfig contains configuration for the maroto renderer
type MarotoConfig struct {
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	Logger         *zap.Logger
}

// MarotoRenderer lays a document tree out as PDF without a browser.
// A fresh maroto instance is built per call.
type MarotoRenderer struct {
	config *MarotoConfig
	logger *zap.Logger
}

// NewMarotoRenderer creates a new maroto-based PDF renderer
func NewMarotoRenderer(config *MarotoConfig) *MarotoRenderer {
	if config == nil {
		config = &MarotoConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultMarotoTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarotoRenderer{config: config, logger: logger}
}

type marotoOutput struct {
	data []byte
	err  error
}

// Render lays out req.Document and returns the PDF bytes
func (r *MarotoRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidDocument, "render request is nil", nil)
	}
	if req.Document == nil {
		return nil, NewRenderError(ErrCodeInvalidDocument, "document is nil", nil)
	}
	setup := req.pageSetup()
	if !setup.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(setup.PaperSize), nil)
	}

	startTime := time.Now()
	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan marotoOutput, 1)
	go func() {
		data, err := r.generate(req.Document, setup)
		done <- marotoOutput{data: data, err: err}
	}()

	var out marotoOutput
	select {
	case out = <-done:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), ctx.Err())
		}
		return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", ctx.Err())
	}
	if out.err != nil {
		r.logger.Error("maroto rendering failed", zap.String("reference", req.Document.Reference), zap.Error(out.err))
		return nil, NewRenderError(ErrCodeRenderFailed, "maroto generation failed", out.err)
	}
	if len(out.data) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	pageCount := estimatePageCount(out.data)
	renderDuration := time.Since(startTime)

	r.logger.Debug("PDF rendered",
		zap.String("engine", EngineMaroto),
		zap.Int("bytes", len(out.data)),
		zap.Int("pages", pageCount),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        out.data,
		PageCount:      pageCount,
		RenderDuration: renderDuration,
	}, nil
}

func (r *MarotoRenderer) generate(doc *document.Document, setup document.PageSetup) ([]byte, error) {
	m := maroto.New(buildMarotoConfig(setup))

	for i := range doc.Sections {
		sec := &doc.Sections[i]
		switch sec.Kind {
		case document.SectionHeader:
			addHeader(m, sec)
		case document.SectionDescription:
			addTitle(m, sec.Title)
			addParagraph(m, sec.Text)
		case document.SectionChart, document.SectionRows:
			addTitle(m, sec.Title)
			addTable(m, sec.Table)
		case document.SectionFooter:
			if err := m.RegisterFooter(footerRows(sec)...); err != nil {
				return nil, err
			}
		default:
			addTitle(m, sec.Title)
			addFields(m, sec.Fields)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}

func buildMarotoConfig(setup document.PageSetup) *entity.Config {
	size := pagesize.A4
	if setup.PaperSize == document.PaperSizeA5 {
		size = pagesize.A5
	}
	orient := orientation.Vertical
	if setup.Orientation == document.OrientationLandscape {
		orient = orientation.Horizontal
	}
	return config.NewBuilder().
		WithPageSize(size).
		WithOrientation(orient).
		WithTopMargin(float64(setup.Margins.Top)).
		WithRightMargin(float64(setup.Margins.Right)).
		WithBottomMargin(float64(setup.Margins.Bottom)).
		WithLeftMargin(float64(setup.Margins.Left)).
		Build()
}

func colorOf(e document.Emphasis) *props.Color {
	s := swatchOf(e)
	return &props.Color{Red: s.Red, Green: s.Green, Blue: s.Blue}
}

func addHeader(m core.Maroto, sec *document.Section) {
	company, _ := sec.Field("Company")
	m.AddRow(12,
		text.NewCol(7, company.Value, props.Text{Size: 14, Style: fontstyle.Bold, Top: 2}),
		text.NewCol(5, sec.Title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right, Top: 1}),
	)
	for _, f := range sec.Fields {
		if f.Label == "Company" {
			continue
		}
		m.AddRow(6,
			text.NewCol(gridSize, f.Value, props.Text{Size: 10, Align: align.Right, Color: colorOf(f.Emphasis)}),
		)
	}
	if len(sec.Badges) > 0 {
		cols := make([]core.Col, 0, len(sec.Badges)+1)
		width := gridSize / 4
		for _, b := range sec.Badges {
			cols = append(cols, text.NewCol(width, b.Label, props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Center, Color: colorOf(b.Emphasis),
			}))
		}
		if rest := gridSize - width*len(sec.Badges); rest > 0 {
			cols = append([]core.Col{col.New(rest)}, cols...)
		}
		m.AddRow(7, cols...)
	}
	m.AddRow(4, line.NewCol(gridSize))
}

func addTitle(m core.Maroto, title string) {
	if title == "" {
		return
	}
	m.AddRow(9, text.NewCol(gridSize, title, props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}))
}

func addFields(m core.Maroto, fields []document.Field) {
	for _, f := range fields {
		style := fontstyle.Normal
		size := 10.0
		if f.Highlight {
			style = fontstyle.Bold
			size = 11
		}
		m.AddRow(6,
			text.NewCol(6, f.Label, props.Text{Size: size, Style: style}),
			text.NewCol(6, f.Value, props.Text{Size: size, Style: style, Align: align.Right, Color: colorOf(f.Emphasis)}),
		)
	}
}

func addParagraph(m core.Maroto, body string) {
	lines := len([]rune(body))/charsPerTextLine + 1
	m.AddRow(float64(lines)*5, text.NewCol(gridSize, body, props.Text{Size: 10}))
}

func addTable(m core.Maroto, t *document.Table) {
	if t == nil || len(t.Columns) == 0 {
		return
	}
	widths := columnWidths(len(t.Columns))
	size := 9.0
	if len(t.Columns) > 6 {
		size = 6
	}

	header := make([]core.Col, len(widths))
	for i, w := range widths {
		header[i] = text.NewCol(w, t.Columns[i], props.Text{Size: size, Style: fontstyle.Bold})
	}
	m.AddRow(7, header...)
	m.AddRow(2, line.NewCol(gridSize))

	for _, cells := range t.Rows {
		cols := make([]core.Col, len(widths))
		for i, w := range widths {
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			cols[i] = text.NewCol(w, value, props.Text{Size: size})
		}
		m.AddRow(6, cols...)
	}
}

// columnWidths spreads the grid over n columns; the first columns take the remainder.
// Tables wider than the grid keep only the first gridSize columns.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	n = min(n, gridSize)
	widths := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < rest {
			widths[i]++
		}
	}
	return widths
}

func footerRows(sec *document.Section) []core.Row {
	rows := []core.Row{row.New(4).Add(line.NewCol(gridSize))}
	for _, f := range sec.Fields {
		rows = append(rows, row.New(5).Add(
			text.NewCol(gridSize, f.Value, props.Text{Size: 8, Align: align.Center, Color: colorOf(f.Emphasis)}),
		))
	}
	return rows
}

// Close is a no-op; maroto holds no resources between renders
func (r *MarotoRenderer) Close() error {
	return nil
}

var _ PDFRenderer = (*MarotoRenderer)(nil)
