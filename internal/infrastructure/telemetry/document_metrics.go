package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "sepur-finance/documents"

// Outcome values recorded on pipeline metrics
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// DocumentMetrics records document generation, upload and cache activity.
// A nil *DocumentMetrics is valid and records nothing.
type DocumentMetrics struct {
	exports        *Counter
	exportDuration *Histogram
	exportSize     *Histogram
	uploads        *Counter
	uploadDuration *Histogram
	cacheLookups   *Counter
}

// NewDocumentMetrics creates the pipeline instruments on meter
func NewDocumentMetrics(meter metric.Meter) (*DocumentMetrics, error) {
	var (
		m   DocumentMetrics
		err error
	)
	if m.exports, err = NewCounter(meter, "finance_document_exports_total",
		"Documents generated, by kind, format and outcome", "{document}"); err != nil {
		return nil, err
	}
	if m.exportDuration, err = NewHistogram(meter, "finance_document_export_duration_seconds",
		"Time spent building and encoding a document", "s", RenderDurationBuckets...); err != nil {
		return nil, err
	}
	if m.exportSize, err = NewHistogram(meter, "finance_document_size_bytes",
		"Size of encoded documents", "By", DocumentSizeBuckets...); err != nil {
		return nil, err
	}
	if m.uploads, err = NewCounter(meter, "finance_document_uploads_total",
		"Documents uploaded to object storage, by outcome", "{document}"); err != nil {
		return nil, err
	}
	if m.uploadDuration, err = NewHistogram(meter, "finance_document_upload_duration_seconds",
		"Time spent uploading a document", "s", RenderDurationBuckets...); err != nil {
		return nil, err
	}
	if m.cacheLookups, err = NewCounter(meter, "finance_document_cache_lookups_total",
		"Document cache lookups, by outcome hit or miss", "{lookup}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// MustDocumentMetrics is NewDocumentMetrics for wiring code that cannot recover
func MustDocumentMetrics(mp *MeterProvider) *DocumentMetrics {
	m, err := NewDocumentMetrics(mp.Meter(meterName))
	if err != nil {
		panic(fmt.Sprintf("telemetry: %v", err))
	}
	return m
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return AttrOutcome.String(OutcomeFailure)
	}
	return AttrOutcome.String(OutcomeSuccess)
}

// RecordExport records one document generation. kind is a report type or "invoice".
func (m *DocumentMetrics) RecordExport(ctx context.Context, kind, format string, elapsed time.Duration, size int, err error) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrDocumentKind.String(kind), AttrFormat.String(format)}
	m.exports.Inc(ctx, append(attrs, outcome(err))...)
	m.exportDuration.RecordDuration(ctx, elapsed, attrs...)
	if err == nil {
		m.exportSize.Record(ctx, float64(size), attrs...)
	}
}

// RecordUpload records one object storage upload
func (m *DocumentMetrics) RecordUpload(ctx context.Context, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.uploads.Inc(ctx, outcome(err))
	m.uploadDuration.RecordDuration(ctx, elapsed, outcome(err))
}

// RecordCacheLookup records a document cache hit or miss
func (m *DocumentMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Inc(ctx, AttrOutcome.String(result))
}
