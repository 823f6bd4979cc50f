package report

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sepur/finance/internal/domain/shared"
)

var validate = validator.New()

// Request is the transient value object for one export call
type Request struct {
	Type   ReportType   `validate:"required,oneof=financial_summary invoice_report payment_report client_report monthly_analysis"`
	Format ExportFormat `validate:"required,oneof=pdf excel csv"`
	Range  DateRange
}

// NewRequest builds a validated Request. The report type is checked before the format.
func NewRequest(reportType, format string, rng DateRange) (Request, error) {
	req := Request{
		Type:   ReportType(strings.TrimSpace(reportType)),
		Format: ExportFormat(strings.TrimSpace(format)),
		Range:  rng,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the tagged fields and reports the first invalid one
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Format" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Invalid export type")
	}
	return shared.NewDomainError(shared.ErrCodeValidation, "Invalid report type")
}
