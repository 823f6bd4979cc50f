package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sepur/finance/internal/bootstrap"
	"github.com/sepur/finance/internal/infrastructure/auth"
	"github.com/sepur/finance/internal/infrastructure/config"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/interfaces/http/handler"
	"github.com/sepur/finance/internal/interfaces/http/middleware"
	"github.com/sepur/finance/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Sepur Finance API
//	@version		1.0
//	@description	Invoice and report document export API

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Sepur Finance",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()
	deps, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.Close(context.Background()); err != nil {
			log.Error("Error releasing resources", zap.Error(err))
		}
	}()
	log.Info("Dependencies ready",
		zap.String("database", deps.Database.Dialect()),
		zap.String("pdf_engine", cfg.Export.PDFEngine),
		zap.String("excel_mode", cfg.Export.ExcelMode),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        newEngine(cfg, deps, log),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newEngine builds the gin engine with the middleware stack and every route
func newEngine(cfg *config.Config, deps *bootstrap.Container, log *zap.Logger) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - generate or propagate the request id
	// 2. Logger - request log with correlation fields
	// 3. Recovery - catch panics
	// 4. Tracing - server span, then span attributes
	// 5. CORS - answer preflights before auth
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())

	corsConfig := middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsConfig))

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, deps.Database)
	engine.GET("/health", systemHandler.Health)

	apiMiddleware := []gin.HandlerFunc{
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{Validator: auth.NewJWTService(cfg.JWT)}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	}
	if cfg.HTTP.RateLimitEnabled {
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, 0),
		))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	exportHandler := handler.NewExportHandler(deps.Reports).Use(middleware.RateLimit(
		middleware.NewRateLimiter(cfg.HTTP.ExportRateLimit, cfg.HTTP.ExportRateWindow, cfg.HTTP.ExportRateLimitBurst),
	))

	router.NewRouter(engine, router.WithAPIVersion("v1"), router.WithAPIMiddleware(apiMiddleware...)).
		RegisterUnversioned(exportHandler).
		Register(handler.NewInvoiceHandler(deps.Invoices, deps.Documents)).
		Register(handler.NewReportHandler(deps.Reports)).
		Register(handler.NewPaymentHandler(deps.Payments)).
		Setup()

	return engine
}
