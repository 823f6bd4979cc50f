package printing

import (
	"errors"
	"testing"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderError(t *testing.T) {
	t.Run("error without cause", func(t *testing.T) {
		err := NewRenderError(ErrCodeRenderTimeout, "timeout occurred", nil)

		assert.Equal(t, ErrCodeRenderTimeout, err.Code)
		assert.Equal(t, "timeout occurred", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := assert.AnError
		err := NewRenderError(ErrCodeRenderFailed, "render failed", cause)

		assert.Contains(t, err.Error(), "render failed")
		assert.Contains(t, err.Error(), cause.Error())
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("matches the shared render error", func(t *testing.T) {
		err := error(NewRenderError(ErrCodeRenderFailed, "render failed", nil))
		assert.True(t, errors.Is(err, shared.ErrRender))
		assert.False(t, errors.Is(err, shared.ErrUpload))
	})
}

func TestRenderRequest_PageSetup(t *testing.T) {
	landscape := document.PageSetup{PaperSize: document.PaperSizeA5, Orientation: document.OrientationLandscape}

	tests := []struct {
		name string
		req  *RenderRequest
		want document.PaperSize
	}{
		{"defaults to A4", &RenderRequest{HTML: "<p>x</p>"}, document.PaperSizeA4},
		{"document page", &RenderRequest{Document: &document.Document{Page: landscape}}, document.PaperSizeA5},
		{"override wins", &RenderRequest{
			Document: &document.Document{Page: landscape},
			Page:     &document.PageSetup{PaperSize: document.PaperSizeA4},
		}, document.PaperSizeA4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.pageSetup().PaperSize)
		})
	}
}

func TestNewPDFRenderer(t *testing.T) {
	r, err := NewPDFRenderer(nil)
	require.NoError(t, err)
	assert.IsType(t, &MarotoRenderer{}, r)

	r, err = NewPDFRenderer(&EngineConfig{Engine: EngineChromedp})
	require.NoError(t, err)
	assert.IsType(t, &ChromedpRenderer{}, r)
	assert.NoError(t, r.Close())

	_, err = NewPDFRenderer(&EngineConfig{Engine: "wkhtmltopdf"})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeUnknownEngine, renderErr.Code)
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Kids [3 0 R 4 0 R] >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, estimatePageCount(pdf))
	assert.Equal(t, 1, estimatePageCount([]byte("garbage")))
}

func TestEmphasisColor(t *testing.T) {
	assert.Equal(t, "#15803d", EmphasisColor(document.EmphasisPositive))
	assert.Equal(t, "#b91c1c", EmphasisColor(document.EmphasisNegative))
	assert.Equal(t, "#1d4ed8", EmphasisColor(document.EmphasisInfo))
	assert.Contains(t, string(emphasisRules()), ".em-info{color:#1d4ed8}")
	assert.Equal(t, EmphasisColor(document.EmphasisNeutral), EmphasisColor("unknown"))
}
