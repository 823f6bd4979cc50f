package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/sepur/finance/internal/infrastructure/telemetry"
)

// PaymentService checks prospective payments against invoice balances
type PaymentService struct {
	invoices finance.InvoiceReader
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(invoices finance.InvoiceReader) *PaymentService {
	return &PaymentService{invoices: invoices, now: time.Now}
}

// ValidatePayment validates a payment before it is recorded
func (s *PaymentService) ValidatePayment(ctx context.Context, req ValidatePaymentRequest) (*ValidatePaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "validate")
	defer span.End()

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidInput, "Invalid invoice ID")
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, invoiceID.String())

	date, err := format.ParseDate(req.PaymentDate)
	if err != nil || date == nil {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Invalid payment date")
	}

	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrCodeNotFound, "Invoice not found")
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	draft := finance.PaymentDraft{
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		Method:      finance.PaymentMethod(req.Method),
		PaymentDate: *date,
		Status:      finance.PaymentRecordStatus(req.Status),
	}
	if err := finance.ValidatePayment(inv, draft, s.now()); err != nil {
		return nil, err
	}

	remaining := inv.Remaining().Display
	paidAfter := inv.PaidAmount.Add(req.Amount)
	return &ValidatePaymentResponse{
		Valid:            true,
		RemainingBalance: remaining,
		BalanceAfter:     remaining.Sub(req.Amount),
		PaymentStatus:    string(finance.DerivePaymentStatus(inv.TotalAmount, paidAfter)),
	}, nil
}
