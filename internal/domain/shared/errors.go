package shared

import "errors"

// Error codes shared by every layer of the document pipeline.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeMissingField      = "MISSING_REQUIRED_FIELD"
	ErrCodeRender            = "RENDER_ERROR"
	ErrCodePopupBlocked      = "POPUP_BLOCKED"
	ErrCodeUpload            = "UPLOAD_ERROR"
	ErrCodeMetadataWrite     = "METADATA_WRITE_ERROR"
	ErrCodeUnsupportedExport = "UNSUPPORTED_EXPORT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps the cause for logging
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the domain error code carried by err, or "" when err is not a DomainError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrInvalidInput      = NewDomainError(ErrCodeInvalidInput, "Invalid input provided")
	ErrUnauthorized      = NewDomainError(ErrCodeUnauthorized, "Unauthorized")
	ErrValidation        = NewDomainError(ErrCodeValidation, "Validation failed")
	ErrRender            = NewDomainError(ErrCodeRender, "Document rendering failed")
	ErrPopupBlocked      = NewDomainError(ErrCodePopupBlocked, "Pop-up blocked. Please allow pop-ups for this site.")
	ErrUpload            = NewDomainError(ErrCodeUpload, "Upload failed")
	ErrMetadataWrite     = NewDomainError(ErrCodeMetadataWrite, "Failed to save file metadata")
	ErrUnsupportedExport = NewDomainError(ErrCodeUnsupportedExport, "Unsupported export")
)
