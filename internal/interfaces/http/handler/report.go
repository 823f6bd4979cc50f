package handler

import (
	"github.com/gin-gonic/gin"
	exportapp "github.com/sepur/finance/internal/application/export"
)

// ReportHandler serves the reports overview
type ReportHandler struct {
	BaseHandler
	reports *exportapp.ReportExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *exportapp.ReportExportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers report routes on the group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/overview", h.GetOverview)
}

// GetOverview godoc
// @Summary      Reports overview
// @Description  Collection rate, outstanding balance, monthly revenue and top clients
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /reports/overview [get]
func (h *ReportHandler) GetOverview(c *gin.Context) {
	overview, err := h.reports.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}
