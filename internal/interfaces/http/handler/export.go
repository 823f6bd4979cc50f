package handler

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/sepur/finance/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Export endpoint messages
const (
	msgExportFailed       = "Export failed"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDateRange   = "Invalid date range"
)

// ExportHandler serves report exports. Its error bodies keep the bare {"error": "..."} shape.
type ExportHandler struct {
	reports    *exportapp.ReportExportService
	middleware []gin.HandlerFunc
	now        func() time.Time
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(reports *exportapp.ReportExportService) *ExportHandler {
	return &ExportHandler{reports: reports, now: time.Now}
}

// ExportRequest is the report export request body
type ExportRequest struct {
	Type       string         `json:"type" example:"csv"`
	ReportType string         `json:"reportType" example:"invoice_report"`
	DateRange  DateRangeInput `json:"dateRange"`
}

// DateRangeInput is an inclusive date range. Both ends accept dates or RFC 3339 timestamps.
type DateRangeInput struct {
	From string `json:"from" example:"2024-01-01"`
	To   string `json:"to" example:"2024-01-31"`
}

// Use adds middleware that runs only in front of the export route, e.g. a rate limit
func (h *ExportHandler) Use(middleware ...gin.HandlerFunc) *ExportHandler {
	h.middleware = append(h.middleware, middleware...)
	return h
}

// RegisterRoutes registers POST /export on the group
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	handlers := append(slices.Clone(h.middleware), h.Export)
	rg.POST("/export", handlers...)
}

// Export godoc
// @Summary      Export a report
// @Description  Encodes one report as pdf, excel or csv and returns it as an attachment
// @Tags         export
// @Accept       json
// @Produce      application/pdf,text/csv
// @Param        request body ExportRequest true "Export request"
// @Success      200 {file} file
// @Failure      400 {object} dto.LegacyError
// @Failure      401 {object} dto.LegacyError
// @Failure      500 {object} dto.LegacyError
// @Router       /export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.LegacyError{Error: msgInvalidRequestBody})
		return
	}

	exportReq := exportapp.ReportExportRequest{ReportType: req.ReportType, Format: req.Type}
	if _, err := exportReq.Parse(); err != nil {
		c.JSON(http.StatusBadRequest, dto.LegacyError{Error: validationMessage(err)})
		return
	}

	rng, err := report.ParseDateRange(req.DateRange.From, req.DateRange.To, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.LegacyError{Error: msgInvalidDateRange})
		return
	}
	exportReq.Range = rng

	ctx := c.Request.Context()
	artifact, err := h.reports.Export(ctx, exportReq)
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) && de.Code == shared.ErrCodeValidation {
			c.JSON(http.StatusBadRequest, dto.LegacyError{Error: de.Message})
			return
		}
		logger.L(ctx).Error("Export error",
			zap.String("report_type", req.ReportType),
			zap.String("format", req.Type),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.LegacyError{Error: msgExportFailed})
		return
	}

	if _, err := exportapp.NewDownloadDelivery(responseSink{c: c}).Deliver(ctx, artifact); err != nil {
		logger.L(ctx).Error("Export delivery failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.LegacyError{Error: msgExportFailed})
	}
}

func validationMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
