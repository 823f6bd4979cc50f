package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/sepur/finance/internal/application/finance"
)

// PaymentHandler serves payment checks
type PaymentHandler struct {
	BaseHandler
	payments *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers payment routes on the group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/validate", h.ValidatePayment)
}

// ValidatePayment godoc
// @Summary      Validate a prospective payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body financeapp.ValidatePaymentRequest true "Payment"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /payments/validate [post]
func (h *PaymentHandler) ValidatePayment(c *gin.Context) {
	var req financeapp.ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.payments.ValidatePayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
