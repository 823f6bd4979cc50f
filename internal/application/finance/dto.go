package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// ListInvoicesRequest represents a request to list invoices
type ListInvoicesRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	ClientName    string `form:"client_name"`
}

// InvoiceResponse represents one invoice row
type InvoiceResponse struct {
	ID              string          `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	Title           string          `json:"title"`
	ClientName      string          `json:"client_name"`
	ClientCompany   string          `json:"client_company,omitempty"`
	ClientEmail     string          `json:"client_email,omitempty"`
	IssueDate       *time.Time      `json:"issue_date,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	Amount          decimal.Decimal `json:"amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Currency        string          `json:"currency"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ListInvoicesResponse represents a paginated list of invoices
type ListInvoicesResponse struct {
	Items      []InvoiceResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// =============================================================================
// Payment DTOs
// =============================================================================

// ValidatePaymentRequest represents a prospective payment
type ValidatePaymentRequest struct {
	InvoiceID   string          `json:"invoice_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"payment_method"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	Status      string          `json:"status"`
}

// ValidatePaymentResponse reports the balance a valid payment leaves behind
type ValidatePaymentResponse struct {
	Valid            bool            `json:"valid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	PaymentStatus    string          `json:"payment_status"`
}
