package document

import (
	"errors"

	"github.com/sepur/finance/internal/domain/shared"
)

// MissingRequiredFieldError is returned when an entity cannot be rendered at all
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return "missing required field: " + e.Field
}

// Is makes the error match shared.ErrValidation
func (e *MissingRequiredFieldError) Is(target error) bool {
	var de *shared.DomainError
	return errors.As(target, &de) && de.Code == shared.ErrCodeValidation
}

// RenderError wraps data that could not be shaped into a document, such as a malformed date
type RenderError struct {
	Field string
	Cause error
}

func (e *RenderError) Error() string {
	return "cannot render " + e.Field + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is makes the error match shared.ErrRender
func (e *RenderError) Is(target error) bool {
	var de *shared.DomainError
	return errors.As(target, &de) && de.Code == shared.ErrCodeRender
}
