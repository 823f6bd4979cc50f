package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	exportapp "github.com/sepur/finance/internal/application/export"
)

// Content dispositions accepted by document endpoints
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
	DispositionPrint      = "print"
)

// responseSink emits an artifact as the HTTP response body
type responseSink struct {
	c      *gin.Context
	inline bool
}

// Emit implements exportapp.FileSink
func (s responseSink) Emit(_ context.Context, fileName, contentType string, data []byte) error {
	disposition := DispositionAttachment
	if s.inline {
		disposition = DispositionInline
	}
	s.c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, fileName))
	s.c.Header("Cache-Control", "no-store")
	s.c.Data(http.StatusOK, contentType, data)
	return nil
}

// responseWindow shows an artifact inline in the caller's browser. A response
// can always be written, so the window is never blocked.
type responseWindow struct {
	c *gin.Context
}

// Open implements exportapp.WindowOpener
func (w responseWindow) Open(ctx context.Context, a *exportapp.Artifact) (bool, error) {
	if err := (responseSink{c: w.c, inline: true}).Emit(ctx, a.FileName, a.ContentType, a.Data); err != nil {
		return false, err
	}
	return true, nil
}

// deliveryFor returns the delivery variant of a disposition
func deliveryFor(c *gin.Context, disposition string) (exportapp.Delivery, bool) {
	switch disposition {
	case "", DispositionAttachment:
		return exportapp.NewDownloadDelivery(responseSink{c: c}), true
	case DispositionInline:
		return exportapp.NewPreviewDelivery(responseWindow{c: c}), true
	case DispositionPrint:
		return exportapp.NewPrintDelivery(responseWindow{c: c}), true
	}
	return nil, false
}

var (
	_ exportapp.FileSink     = responseSink{}
	_ exportapp.WindowOpener = responseWindow{}
)
