package document

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/shared/format"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvoiceSnapshot is the data contract for rendering one invoice.
// Only the identifier and the total are required; everything else degrades to a default.
// Dates are kept as received so malformed values surface as RenderError during building.
type InvoiceSnapshot struct {
	ID              string           `json:"id" validate:"required"`
	InvoiceNumber   string           `json:"invoice_number"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	ClientName      string           `json:"client_name"`
	ClientCompany   string           `json:"client_company"`
	ClientEmail     string           `json:"client_email"`
	IssueDate       string           `json:"issue_date"`
	DueDate         string           `json:"due_date"`
	PaidDate        string           `json:"paid_date"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	Amount          *decimal.Decimal `json:"amount"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	TaxAmount       *decimal.Decimal `json:"tax_amount"`
	TotalAmount     *decimal.Decimal `json:"total_amount" validate:"required"`
	PaidAmount      *decimal.Decimal `json:"paid_amount"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount"`
	Currency        string           `json:"currency"`
	Notes           string           `json:"notes"`
	Terms           string           `json:"terms"`
}

// Validate checks the required fields and reports the first missing one
func (s *InvoiceSnapshot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &MissingRequiredFieldError{Field: "id"}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &MissingRequiredFieldError{Field: verrs[0].Field()}
		}
		return err
	}
	return nil
}

// SnapshotFromInvoice converts a persisted invoice into a render snapshot
func SnapshotFromInvoice(inv *finance.Invoice) InvoiceSnapshot {
	s := InvoiceSnapshot{
		InvoiceNumber:   inv.InvoiceNumber,
		Title:           inv.Title,
		Description:     inv.Description,
		ClientName:      inv.Client.Name,
		ClientCompany:   inv.Client.Company,
		ClientEmail:     inv.Client.Email,
		IssueDate:       format.ISODate(inv.IssueDate),
		DueDate:         format.ISODate(inv.DueDate),
		PaidDate:        format.ISODate(inv.PaidDate),
		Status:          string(inv.Status),
		PaymentStatus:   string(inv.PaymentStatus),
		Amount:          decimalPtr(inv.Amount),
		TaxRate:         decimalPtr(inv.TaxRate),
		TaxAmount:       decimalPtr(inv.TaxAmount),
		TotalAmount:     decimalPtr(inv.TotalAmount),
		PaidAmount:      decimalPtr(inv.PaidAmount),
		RemainingAmount: decimalPtr(inv.RemainingAmount),
		Currency:        inv.Currency,
		Notes:           inv.Notes,
		Terms:           inv.Terms,
	}
	if inv.ID != uuid.Nil {
		s.ID = inv.ID.String()
	}
	return s
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func valueOr(d *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if d == nil {
		return def
	}
	return *d
}
