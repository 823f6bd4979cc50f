package export

import (
	"context"
	"fmt"
	"time"

	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReportExportRequest is the raw export request as received from a caller
type ReportExportRequest struct {
	ReportType string
	Format     string
	Range      report.DateRange
}

// Parse validates the report type and then the format
func (r ReportExportRequest) Parse() (report.Request, error) {
	return report.NewRequest(r.ReportType, r.Format, r.Range)
}

// ReportExportService sources report data, builds the document and encodes it
type ReportExportService struct {
	invoices finance.InvoiceReader
	payments finance.PaymentReader
	reports  report.Reader
	encoder  Encoder
	options  document.BuildOptions
	metrics  *telemetry.DocumentMetrics
	now      func() time.Time
}

// NewReportExportService creates a new ReportExportService
func NewReportExportService(
	invoices finance.InvoiceReader,
	payments finance.PaymentReader,
	reports report.Reader,
	encoder Encoder,
	options document.BuildOptions,
) *ReportExportService {
	return &ReportExportService{
		invoices: invoices,
		payments: payments,
		reports:  reports,
		encoder:  encoder,
		options:  options,
		now:      time.Now,
	}
}

// SetDocumentMetrics sets the export metrics collector
func (s *ReportExportService) SetDocumentMetrics(m *telemetry.DocumentMetrics) {
	s.metrics = m
}

// SetClock overrides the clock used for generation timestamps and file names
func (s *ReportExportService) SetClock(now func() time.Time) {
	s.now = now
}

// Gather sources the data of one report type. An inverted range is passed through
// and yields empty rows.
func (s *ReportExportService) Gather(ctx context.Context, t report.ReportType, rng report.DateRange) (*report.Bundle, error) {
	b := &report.Bundle{Type: t, Range: rng}
	from, to := rng.Bounds()

	switch t {
	case report.TypeFinancialSummary:
		m, err := s.reports.FinancialMetrics(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load financial metrics: %w", err)
		}
		b.Metrics = m
		if b.Monthly, err = s.reports.MonthlyRevenue(ctx, report.MonthsBack); err != nil {
			return nil, fmt.Errorf("failed to load monthly revenue: %w", err)
		}
	case report.TypeInvoiceReport:
		invoices, err := s.invoices.FindCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load invoices: %w", err)
		}
		b.Invoices = invoices
	case report.TypePaymentReport:
		payments, err := s.payments.FindPaidBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		b.Payments = payments
	case report.TypeClientReport:
		clients, err := s.reports.TopClients(ctx, report.TopClientsLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load top clients: %w", err)
		}
		b.Clients = clients
	case report.TypeMonthlyAnalysis:
		monthly, err := s.reports.MonthlyRevenue(ctx, report.MonthsBack)
		if err != nil {
			return nil, fmt.Errorf("failed to load monthly revenue: %w", err)
		}
		b.Monthly = monthly
	default:
		_, err := report.ParseReportType(string(t))
		return nil, err
	}
	return b, nil
}

// Export validates the request and produces the encoded report
func (s *ReportExportService) Export(ctx context.Context, req ReportExportRequest) (*Artifact, error) {
	parsed, err := req.Parse()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "export",
		telemetry.SpanAttrReportType, parsed.Type.String(),
		telemetry.SpanAttrFormat, string(parsed.Format))
	defer span.End()

	log := logger.L(ctx).Zap().With(
		zap.String("report_type", parsed.Type.String()),
		zap.String("format", string(parsed.Format)))

	start := time.Now()
	artifact, err := s.export(ctx, parsed)
	size := 0
	if artifact != nil {
		size = len(artifact.Data)
	}
	s.metrics.RecordExport(ctx, parsed.Type.String(), string(parsed.Format), time.Since(start), size, err)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Report export failed", zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSize, size)
	log.Info("Report exported",
		zap.String("file_name", artifact.FileName),
		zap.Int("size", size))
	return artifact, nil
}

func (s *ReportExportService) export(ctx context.Context, req report.Request) (*Artifact, error) {
	bundle, err := s.Gather(ctx, req.Type, req.Range)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opts := s.options
	opts.Now = now
	doc, err := document.BuildReport(*bundle, opts)
	if err != nil {
		return nil, err
	}

	data, contentType, err := s.encoder.EncodeDocument(ctx, req.Format, doc)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Data:        data,
		ContentType: contentType,
		Format:      req.Format,
		FileName:    ReportFileName(req.Type, req.Format, now),
	}, nil
}

// Overview returns the reports dashboard figures
func (s *ReportExportService) Overview(ctx context.Context) (*report.Overview, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "overview")
	defer span.End()

	m, err := s.reports.FinancialMetrics(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load financial metrics: %w", err)
	}
	monthly, err := s.reports.MonthlyRevenue(ctx, report.MonthsBack)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load monthly revenue: %w", err)
	}
	clients, err := s.reports.TopClients(ctx, report.TopClientsLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load top clients: %w", err)
	}

	overview := report.NewOverview(*m, monthly, clients)
	return &overview, nil
}
