package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/sepur/finance/internal/domain/document"
)

// TemplateEngine renders document trees into self-contained HTML.
// The layout is parsed once; Render is safe for concurrent use.
type TemplateEngine struct {
	funcMap template.FuncMap
	layout  string
	tmpl    *template.Template
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLayout replaces the built-in document layout
func WithLayout(content string) TemplateEngineOption {
	return func(e *TemplateEngine) {
		e.layout = content
	}
}

// WithFuncs adds template functions available to the layout
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a template engine with the built-in layout
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{layout: documentLayout}

	e.funcMap = template.FuncMap{
		"pageSize":      pageSize,
		"pageMargins":   pageMargins,
		"emphasisRules": emphasisRules,
		"upper":         strings.ToUpper,
		"join":          strings.Join,
		"isKind":        isKind,
		"fieldValue":    fieldValue,
		"cellClass":     cellClass,
	}

	for _, opt := range opts {
		opt(e)
	}

	tmpl, err := template.New("document").Funcs(e.funcMap).Parse(e.layout)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse document layout", err)
	}
	e.tmpl = tmpl
	return e, nil
}

// RenderTemplateRequest is a request to render one document tree
type RenderTemplateRequest struct {
	Document *document.Document
}

// RenderTemplateResult contains the rendered HTML output
type RenderTemplateResult struct {
	HTML string
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// Render renders the document into a complete HTML page with inlined styles
func (e *TemplateEngine) Render(ctx context.Context, req *RenderTemplateRequest) (*RenderTemplateResult, error) {
	if req == nil || req.Document == nil {
		return nil, NewRenderError(ErrCodeInvalidDocument, "document is nil", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderTimeout, "HTML rendering was cancelled", err)
	}

	startTime := time.Now()

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, req.Document); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute document layout", err)
	}

	return &RenderTemplateResult{
		HTML:           buf.String(),
		RenderDuration: time.Since(startTime),
	}, nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// pageSize renders the CSS @page size, e.g. "A4 portrait"
func pageSize(p document.PageSetup) string {
	size := p.PaperSize
	if !size.IsValid() {
		size = document.PaperSizeA4
	}
	if p.Orientation == document.OrientationLandscape {
		return string(size) + " landscape"
	}
	return string(size) + " portrait"
}

// pageMargins renders the CSS @page margin shorthand in millimeters
func pageMargins(p document.PageSetup) string {
	m := p.Margins
	if m == (document.Margins{}) {
		m = document.DefaultMargins()
	}
	return fmt.Sprintf("%dmm %dmm %dmm %dmm", m.Top, m.Right, m.Bottom, m.Left)
}

// emphasisRules emits one CSS class per emphasis category
func emphasisRules() template.CSS {
	keys := make([]string, 0, len(palette))
	for e := range palette {
		keys = append(keys, string(e))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ".em-%s{color:%s}", k, palette[document.Emphasis(k)].Hex)
	}
	return template.CSS(b.String())
}

func isKind(s document.Section, kind string) bool {
	return string(s.Kind) == kind
}

// fieldValue returns the value of the labelled field, or "" when absent
func fieldValue(s document.Section, label string) string {
	f, _ := s.Field(label)
	return f.Value
}

func cellClass(f document.Field) string {
	class := "em-" + string(f.Emphasis)
	if f.Emphasis == "" {
		class = "em-" + string(document.EmphasisNeutral)
	}
	if f.Highlight {
		class += " highlight"
	}
	return class
}
