// Package bootstrap assembles the document pipeline from configuration.
// The API server and the export CLI share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	exportapp "github.com/sepur/finance/internal/application/export"
	financeapp "github.com/sepur/finance/internal/application/finance"
	"github.com/sepur/finance/internal/domain/document"
	"github.com/sepur/finance/internal/infrastructure/cache"
	"github.com/sepur/finance/internal/infrastructure/config"
	exportinfra "github.com/sepur/finance/internal/infrastructure/export"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/infrastructure/persistence"
	"github.com/sepur/finance/internal/infrastructure/printing"
	"github.com/sepur/finance/internal/infrastructure/storage"
	"github.com/sepur/finance/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Container holds the wired services and the resources they depend on
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Database *persistence.Database
	Storage  exportapp.ObjectStorage
	Cache    cache.DocumentCache
	Renderer printing.PDFRenderer
	Registry *exportinfra.Registry

	Tracer  *telemetry.TracerProvider
	Meter   *telemetry.MeterProvider
	Metrics *telemetry.DocumentMetrics

	Reports   *exportapp.ReportExportService
	Documents *exportapp.InvoiceDocumentService
	Invoices  *financeapp.InvoiceService
	Payments  *financeapp.PaymentService
}

// Option adjusts how New builds the container
type Option func(*options)

type options struct {
	skipStorage bool
}

// WithoutStorage leaves uploads unconfigured, for tools that never upload
func WithoutStorage() Option {
	return func(o *options) {
		o.skipStorage = true
	}
}

// BuildOptions derives document branding from the export configuration
func BuildOptions(cfg config.ExportConfig) document.BuildOptions {
	opts := document.DefaultBuildOptions(time.Time{})
	if cfg.CompanyName != "" {
		opts.CompanyName = cfg.CompanyName
	}
	if cfg.ProductName != "" {
		opts.ProductName = cfg.ProductName
	}
	if cfg.DefaultCurrency != "" {
		opts.DefaultCurrency = cfg.DefaultCurrency
	}
	return opts
}

// New connects to every configured backend and wires the application services.
// On error the resources opened so far are released.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (c *Container, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c = &Container{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			_ = c.Close(context.Background())
			c = nil
		}
	}()

	if c.Tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log); err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	if c.Meter, err = telemetry.NewMeterProvider(ctx, cfg.Telemetry, log); err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}
	c.Metrics = telemetry.MustDocumentMetrics(c.Meter)

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	if c.Database, err = persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog)); err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "sqlite" {
		if err = persistence.AutoMigrate(c.Database.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	if cfg.Telemetry.DBTraceEnabled {
		if err = c.Database.EnableTracing(cfg.Telemetry.DBSlowQueryThresh, log); err != nil {
			return nil, fmt.Errorf("failed to enable database tracing: %w", err)
		}
	}

	if c.Cache, err = cache.NewDocumentCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(); err != nil {
		return nil, err
	}

	if !o.skipStorage {
		if c.Storage, err = storage.New(ctx, &cfg.Storage, log); err != nil {
			return nil, fmt.Errorf("failed to init object storage: %w", err)
		}
	}

	c.Renderer, err = printing.NewPDFRenderer(&printing.EngineConfig{
		Engine:          cfg.Export.PDFEngine,
		Timeout:         cfg.Export.RenderTimeout,
		ChromeRemoteURL: cfg.Export.ChromeRemoteURL,
		NoSandbox:       cfg.Export.ChromeNoSandbox,
		Logger:          log,
	})
	if err != nil {
		return nil, err
	}
	engine, err := printing.NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	c.Registry = exportinfra.NewDefaultRegistry(exportinfra.Config{
		ExcelMode:     cfg.Export.ExcelMode,
		Renderer:      c.Renderer,
		Engine:        engine,
		PDFFromMarkup: cfg.Export.PDFEngine == printing.EngineChromedp,
	})

	c.wireServices()
	return c, nil
}

func (c *Container) wireServices() {
	db := c.Database.DB
	invoices := persistence.NewGormInvoiceRepository(db)
	payments := persistence.NewGormPaymentRepository(db)
	reports := persistence.NewGormReportRepository(db)
	buildOpts := BuildOptions(c.Config.Export)

	c.Reports = exportapp.NewReportExportService(invoices, payments, reports, c.Registry, buildOpts)
	c.Reports.SetDocumentMetrics(c.Metrics)

	docOpts := []exportapp.InvoiceDocumentOption{
		exportapp.WithDocumentCache(c.Cache, c.Config.Export.DocumentCacheTTL),
		exportapp.WithDocumentMetrics(c.Metrics),
	}
	if c.Storage != nil {
		uploader := exportapp.NewUploadDelivery(c.Storage, persistence.NewGormInvoiceFileRepository(db),
			exportapp.WithUploadMetrics(c.Metrics))
		docOpts = append(docOpts, exportapp.WithUploader(uploader))
	}
	c.Documents = exportapp.NewInvoiceDocumentService(invoices, c.Registry, buildOpts, docOpts...)

	c.Invoices = financeapp.NewInvoiceService(invoices)
	c.Payments = financeapp.NewPaymentService(invoices)
}

// Close releases every resource in reverse order of creation
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Renderer != nil {
		errs = append(errs, c.Renderer.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.Database != nil {
		errs = append(errs, c.Database.Close())
	}
	if c.Meter != nil {
		errs = append(errs, c.Meter.Shutdown(ctx))
	}
	if c.Tracer != nil {
		errs = append(errs, c.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
