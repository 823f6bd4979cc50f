package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultDocumentCacheTTL is used when no TTL is configured
const DefaultDocumentCacheTTL = 15 * time.Minute

// InvoiceDocumentService generates single invoice documents and hands them to a delivery
type InvoiceDocumentService struct {
	invoices finance.InvoiceReader
	encoder  Encoder
	cache    DocumentCache
	cacheTTL time.Duration
	uploader Delivery
	options  document.BuildOptions
	metrics  *telemetry.DocumentMetrics
	now      func() time.Time
}

// InvoiceDocumentOption configures an InvoiceDocumentService
type InvoiceDocumentOption func(*InvoiceDocumentService)

// WithDocumentCache keeps generated bytes for ttl so uploads can be retried without regenerating
func WithDocumentCache(cache DocumentCache, ttl time.Duration) InvoiceDocumentOption {
	return func(s *InvoiceDocumentService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithUploader sets the delivery used by Upload
func WithUploader(d Delivery) InvoiceDocumentOption {
	return func(s *InvoiceDocumentService) { s.uploader = d }
}

// WithDocumentMetrics records generation metrics
func WithDocumentMetrics(m *telemetry.DocumentMetrics) InvoiceDocumentOption {
	return func(s *InvoiceDocumentService) { s.metrics = m }
}

// WithClock overrides the clock used for generation timestamps
func WithClock(now func() time.Time) InvoiceDocumentOption {
	return func(s *InvoiceDocumentService) { s.now = now }
}

// NewInvoiceDocumentService creates a new InvoiceDocumentService
func NewInvoiceDocumentService(
	invoices finance.InvoiceReader,
	encoder Encoder,
	options document.BuildOptions,
	opts ...InvoiceDocumentOption,
) *InvoiceDocumentService {
	s := &InvoiceDocumentService{
		invoices: invoices,
		encoder:  encoder,
		cacheTTL: DefaultDocumentCacheTTL,
		options:  options,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate loads the invoice and encodes it in the requested format
func (s *InvoiceDocumentService) Generate(ctx context.Context, id uuid.UUID, format report.ExportFormat) (*Artifact, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrCodeNotFound, "Invoice not found")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return s.GenerateFromSnapshot(ctx, document.SnapshotFromInvoice(inv), format)
}

// GenerateFromSnapshot encodes a snapshot, which may describe an unsaved invoice
func (s *InvoiceDocumentService) GenerateFromSnapshot(ctx context.Context, snap document.InvoiceSnapshot, format report.ExportFormat) (*Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "generate",
		telemetry.SpanAttrInvoiceNumber, snap.InvoiceNumber,
		telemetry.SpanAttrFormat, string(format))
	defer span.End()

	log := logger.L(ctx).Zap().With(
		zap.String("invoice_id", snap.ID),
		zap.String("format", string(format)))

	artifact := &Artifact{
		ContentType:   format.ContentType(),
		Format:        format,
		FileName:      InvoiceFileName(snap.InvoiceNumber, format),
		InvoiceNumber: snap.InvoiceNumber,
	}
	if id, err := uuid.Parse(snap.ID); err == nil {
		artifact.InvoiceID = &id
	}

	key, keyErr := cacheKey(snap, format)
	if keyErr == nil && s.cache != nil {
		data, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("Document cache lookup failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup(ctx, hit)
		telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, hit)
		if hit {
			artifact.Data = data
			return artifact, nil
		}
	}

	start := time.Now()
	data, contentType, err := s.render(ctx, snap, format)
	s.metrics.RecordExport(ctx, string(document.KindInvoice), string(format), time.Since(start), len(data), err)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Invoice document generation failed", zap.Error(err))
		return nil, err
	}
	artifact.Data = data
	artifact.ContentType = contentType

	if keyErr == nil && s.cache != nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			log.Warn("Failed to cache generated document", zap.Error(err))
		}
	}
	return artifact, nil
}

func (s *InvoiceDocumentService) render(ctx context.Context, snap document.InvoiceSnapshot, format report.ExportFormat) ([]byte, string, error) {
	opts := s.options
	opts.Now = s.now()
	doc, err := document.BuildInvoice(snap, opts)
	if err != nil {
		return nil, "", err
	}
	return s.encoder.EncodeDocument(ctx, format, doc)
}

// Deliver generates the invoice document and hands it to d
func (s *InvoiceDocumentService) Deliver(ctx context.Context, id uuid.UUID, format report.ExportFormat, d Delivery) (*DeliveryResult, error) {
	artifact, err := s.Generate(ctx, id, format)
	if err != nil {
		return nil, err
	}
	return d.Deliver(ctx, artifact)
}

// Upload generates the invoice PDF, or reuses cached bytes, and uploads it
func (s *InvoiceDocumentService) Upload(ctx context.Context, id uuid.UUID) (*DeliveryResult, error) {
	if s.uploader == nil {
		return nil, shared.NewDomainError(shared.ErrCodeUpload, "Upload is not configured")
	}
	return s.Deliver(ctx, id, report.FormatPDF, s.uploader)
}

// cacheKey is invoice:<id>:<sha256 of the snapshot and format>
func cacheKey(snap document.InvoiceSnapshot, format report.ExportFormat) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte(format))

	id := snap.ID
	if id == "" {
		id = "draft"
	}
	return "invoice:" + id + ":" + hex.EncodeToString(h.Sum(nil)), nil
}
