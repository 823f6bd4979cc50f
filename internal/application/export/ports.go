// Package export orchestrates the document pipeline: it sources data for a
// report or invoice, builds the document tree, encodes it and delivers the bytes.
package export

import (
	"context"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/report"
)

// Encoder serializes a document tree in the requested format
type Encoder interface {
	EncodeDocument(ctx context.Context, format report.ExportFormat, doc *document.Document) (data []byte, contentType string, err error)
}

// ObjectStorage is the remote object store uploaded documents are written to
type ObjectStorage interface {
	// Upload writes data under key, replacing any existing object
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// PublicURL returns the URL the object is reachable at
	PublicURL(key string) string
}

// DocumentCache keeps generated document bytes so an upload can be retried
// without regenerating the document.
type DocumentCache interface {
	// Get returns the cached bytes; ok is false on a miss
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data for ttl
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}
