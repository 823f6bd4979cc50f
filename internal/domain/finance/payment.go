package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodEWallet, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentRecordStatus is the processing status of a single payment
type PaymentRecordStatus string

const (
	PaymentCompleted PaymentRecordStatus = "completed"
	PaymentPending   PaymentRecordStatus = "pending"
	PaymentFailed    PaymentRecordStatus = "failed"
	PaymentCancelled PaymentRecordStatus = "cancelled"
)

// IsValid checks if the status is a known PaymentRecordStatus
func (s PaymentRecordStatus) IsValid() bool {
	switch s {
	case PaymentCompleted, PaymentPending, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Payment is a recorded transaction reducing an invoice's balance.
// InvoiceNumber, ClientName and ClientCompany are joined in at read time.
type Payment struct {
	ID              uuid.UUID
	PaymentNumber   string
	InvoiceID       uuid.UUID
	InvoiceNumber   string
	ClientName      string
	ClientCompany   string
	Amount          decimal.Decimal
	Method          PaymentMethod
	PaymentDate     time.Time
	Status          PaymentRecordStatus
	ReferenceNumber string
	Notes           string
	CreatedAt       time.Time
}

// SumCompleted adds up the amounts of completed payments
func SumCompleted(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// PaymentDraft is a prospective payment checked before it is recorded
type PaymentDraft struct {
	InvoiceID   uuid.UUID
	Amount      decimal.Decimal
	Method      PaymentMethod
	PaymentDate time.Time
	Status      PaymentRecordStatus
}

// ValidatePayment checks a prospective payment against the invoice balance.
// The amount must be positive and not exceed the remaining balance, and the date must not be in the future.
func ValidatePayment(inv *Invoice, draft PaymentDraft, now time.Time) error {
	if inv == nil {
		return shared.NewDomainError(shared.ErrCodeNotFound, "Invoice not found")
	}
	if draft.Amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.ErrCodeValidation, "Amount must be greater than 0")
	}
	remaining := inv.Remaining().Display
	if draft.Amount.GreaterThan(remaining) {
		return shared.NewDomainError(shared.ErrCodeValidation,
			fmt.Sprintf("Amount cannot exceed remaining balance of %s", remaining.StringFixed(2)))
	}
	if startOfDay(draft.PaymentDate).After(startOfDay(now)) {
		return shared.NewDomainError(shared.ErrCodeValidation, "Payment date cannot be in the future")
	}
	if draft.Method != "" && !draft.Method.IsValid() {
		return shared.NewDomainError(shared.ErrCodeValidation, "Invalid payment method")
	}
	if draft.Status != "" && !draft.Status.IsValid() {
		return shared.NewDomainError(shared.ErrCodeValidation, "Invalid payment status")
	}
	return nil
}
