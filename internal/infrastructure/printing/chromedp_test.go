package printing

import (
	"context"
	"testing"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChromedpRenderer() *ChromedpRenderer {
	return &ChromedpRenderer{config: &ChromedpConfig{Scale: 1.0}}
}

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.NotNil(t, r.allocCtx)
}

func TestBuildPrintParams(t *testing.T) {
	tests := []struct {
		name          string
		setup         document.PageSetup
		width, height float64
		landscape     bool
	}{
		{"A4 portrait", document.PageSetup{PaperSize: document.PaperSizeA4, Orientation: document.OrientationPortrait}, 210, 297, false},
		{"A4 landscape", document.PageSetup{PaperSize: document.PaperSizeA4, Orientation: document.OrientationLandscape}, 210, 297, true},
		{"A5", document.PageSetup{PaperSize: document.PaperSizeA5}, 148, 210, false},
	}

	r := newTestChromedpRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := r.buildPrintParams(&RenderRequest{HTML: "<p>x</p>"}, tt.setup)

			assert.InDelta(t, mmToInches(tt.width), params.paperWidth, 0.01)
			assert.InDelta(t, mmToInches(tt.height), params.paperHeight, 0.01)
			assert.Equal(t, tt.landscape, params.landscape)
			assert.True(t, params.printBackground)
		})
	}
}

func TestBuildPrintParams_Margins(t *testing.T) {
	r := newTestChromedpRenderer()
	setup := document.PageSetup{PaperSize: document.PaperSizeA4, Margins: document.DefaultMargins()}

	params := r.buildPrintParams(&RenderRequest{}, setup)
	assert.InDelta(t, mmToInches(15), params.marginTop, 0.001)
	assert.InDelta(t, mmToInches(10), params.marginLeft, 0.001)
	assert.False(t, params.displayHeaderFooter)

	setup.Margins.Bottom = 2
	params = r.buildPrintParams(&RenderRequest{FooterHTML: "<span class='pageNumber'></span>"}, setup)
	assert.True(t, params.displayHeaderFooter)
	assert.InDelta(t, mmToInches(10), params.marginBottom, 0.001)
}

func TestBuildCompleteHTML(t *testing.T) {
	r := newTestChromedpRenderer()

	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, r.buildCompleteHTML(&RenderRequest{HTML: full}))

	wrapped := r.buildCompleteHTML(&RenderRequest{HTML: "<p>fragment</p>", Title: "Invoice <1>"})
	assert.Contains(t, wrapped, "<!DOCTYPE html>")
	assert.Contains(t, wrapped, "<title>Invoice &lt;1&gt;</title>")
	assert.Contains(t, wrapped, "<body><p>fragment</p></body>")
}

func TestChromedpRenderer_RejectsInvalidRequests(t *testing.T) {
	r := newTestChromedpRenderer()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *RenderRequest
		code string
	}{
		{"nil request", nil, ErrCodeInvalidHTML},
		{"blank html", &RenderRequest{HTML: " \n\t "}, ErrCodeInvalidHTML},
		{"bad paper", &RenderRequest{HTML: "<p>x</p>", Page: &document.PageSetup{PaperSize: "LETTER"}}, ErrCodeInvalidPaperSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(ctx, tt.req)
			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}
}

func TestMmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, mmToInches(25.4), 0.0001)
	assert.InDelta(t, 0.0, mmToInches(0), 0.0001)
}

func TestChromedpRenderer_Close(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{DefaultTimeout: time.Second})
	require.NoError(t, err)
	assert.NoError(t, r.Close())
}
