package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/shared"
	"go.uber.org/zap"
)

// RenderRequest contains the parameters for rendering a document to PDF
type RenderRequest struct {
	// Document is the tree to lay out. Required by MarotoRenderer.
	Document *document.Document
	// HTML is the printable markup of the document. Required by ChromedpRenderer.
	HTML string
	// Page overrides the page setup of the document when set
	Page *document.PageSetup
	// Title for the PDF document metadata
	Title string
	// FooterHTML is repeated on every page (optional, chromedp only)
	FooterHTML string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// pageSetup resolves the page layout of the request
func (r *RenderRequest) pageSetup() document.PageSetup {
	if r.Page != nil {
		return *r.Page
	}
	if r.Document != nil && r.Document.Page.PaperSize != "" {
		return r.Document.Page
	}
	return document.PageSetup{
		PaperSize:   document.PaperSizeA4,
		Orientation: document.OrientationPortrait,
		Margins:     document.DefaultMargins(),
	}
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering documents to PDF
type PDFRenderer interface {
	// Render converts a document to PDF bytes
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is makes every rendering failure match shared.ErrRender
func (e *RenderError) Is(target error) bool {
	var de *shared.DomainError
	return errors.As(target, &de) && de.Code == shared.ErrCodeRender
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidDocument  = "INVALID_DOCUMENT"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeUnknownEngine    = "UNKNOWN_ENGINE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Supported PDF engines
const (
	EngineMaroto   = "maroto"
	EngineChromedp = "chromedp"
)

// EngineConfig selects and configures a PDF engine
type EngineConfig struct {
	// Engine is maroto (default) or chromedp
	Engine string
	// Timeout bounds a single render
	Timeout time.Duration
	// ChromeRemoteURL points chromedp at a running browser instead of launching one
	ChromeRemoteURL string
	// NoSandbox is required when Chrome runs as root inside a container
	NoSandbox bool
	Logger    *zap.Logger
}

// NewPDFRenderer builds the renderer named by the config
func NewPDFRenderer(cfg *EngineConfig) (PDFRenderer, error) {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	switch cfg.Engine {
	case "", EngineMaroto:
		return NewMarotoRenderer(&MarotoConfig{DefaultTimeout: cfg.Timeout, Logger: cfg.Logger}), nil
	case EngineChromedp:
		return NewChromedpRenderer(&ChromedpConfig{
			DefaultTimeout: cfg.Timeout,
			RemoteURL:      cfg.ChromeRemoteURL,
			NoSandbox:      cfg.NoSandbox,
			Logger:         cfg.Logger,
		})
	default:
		return nil, NewRenderError(ErrCodeUnknownEngine, fmt.Sprintf("unknown pdf engine %q", cfg.Engine), nil)
	}
}

// estimatePageCount counts page objects in the PDF
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page"))
	// "/Type /Page" also matches the parent "/Type /Pages" object
	count -= bytes.Count(pdfData, []byte("/Type /Pages"))
	return max(count, 1)
}
