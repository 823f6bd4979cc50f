package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	exportapp "github.com/sepur/finance/internal/application/export"
	financeapp "github.com/sepur/finance/internal/application/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/interfaces/http/dto"
)

// InvoiceHandler serves invoice listing and single invoice documents
type InvoiceHandler struct {
	BaseHandler
	invoices  *financeapp.InvoiceService
	documents *exportapp.InvoiceDocumentService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *financeapp.InvoiceService, documents *exportapp.InvoiceDocumentService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, documents: documents}
}

// RegisterRoutes registers invoice routes on the group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.GET("", h.ListInvoices)
	invoices.GET("/:id/document", h.GetDocument)
	invoices.POST("/:id/document/upload", h.UploadDocument)
}

// ListInvoices godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page number"
// @Param        status query string false "Invoice status"
// @Param        payment_status query string false "Payment status"
// @Param        client_name query string false "Client name contains"
// @Param        search query string false "Search number, title or client"
// @Success      200 {object} dto.Response
// @Router       /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var req financeapp.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.invoices.ListInvoices(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// GetDocument godoc
// @Summary      Download or preview an invoice document
// @Tags         invoices
// @Produce      application/pdf,text/csv,text/html
// @Param        id path string true "Invoice ID"
// @Param        format query string false "pdf, csv or html" default(pdf)
// @Param        disposition query string false "attachment, inline or print" default(attachment)
// @Success      200 {file} file
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /invoices/{id}/document [get]
func (h *InvoiceHandler) GetDocument(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}
	f, err := report.ParseDocumentFormat(c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	delivery, ok := deliveryFor(c, c.Query("disposition"))
	if !ok {
		h.BadRequest(c, "Invalid disposition")
		return
	}

	if _, err := h.documents.Deliver(c.Request.Context(), id, f, delivery); err != nil {
		h.HandleError(c, err)
	}
}

// UploadDocument godoc
// @Summary      Upload the invoice PDF to object storage
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /invoices/{id}/document/upload [post]
func (h *InvoiceHandler) UploadDocument(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}

	result, err := h.documents.Upload(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *InvoiceHandler) invoiceID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}
