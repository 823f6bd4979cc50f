package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared"
)

// InvoiceService provides invoice read operations
type InvoiceService struct {
	invoices finance.InvoiceReader
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices finance.InvoiceReader) *InvoiceService {
	return &InvoiceService{invoices: invoices}
}

// ListInvoices returns one page of invoices matching the request filters
func (s *InvoiceService) ListInvoices(ctx context.Context, req ListInvoicesRequest) (*ListInvoicesResponse, error) {
	filter := finance.InvoiceFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			Search:   strings.TrimSpace(req.Search),
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
		}.Normalize(),
		ClientName: strings.TrimSpace(req.ClientName),
	}

	if req.Status != "" {
		status := finance.InvoiceStatus(strings.ToLower(req.Status))
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Invalid invoice status")
		}
		filter.Status = &status
	}
	if req.PaymentStatus != "" {
		ps := finance.PaymentStatus(strings.ToLower(req.PaymentStatus))
		if !ps.IsValid() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Invalid payment status")
		}
		filter.PaymentStatus = &ps
	}

	invoices, total, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	items := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, toInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &ListInvoicesResponse{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func toInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID.String(),
		InvoiceNumber:   inv.InvoiceNumber,
		Title:           inv.Title,
		ClientName:      inv.Client.Name,
		ClientCompany:   inv.Client.Company,
		ClientEmail:     inv.Client.Email,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		PaidDate:        inv.PaidDate,
		Status:          string(inv.Status),
		PaymentStatus:   string(inv.PaymentStatus),
		Amount:          inv.Amount,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.Remaining().Display,
		Currency:        inv.Currency,
		CreatedAt:       inv.CreatedAt,
	}
}
