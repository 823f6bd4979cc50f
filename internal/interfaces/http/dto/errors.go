package dto

import (
	"net/http"

	"github.com/sepur/finance/internal/domain/shared"
)

// API error codes
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal          = "ERR_INTERNAL"
	ErrCodeValidation        = "ERR_VALIDATION"
	ErrCodeBadRequest        = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput      = "ERR_INVALID_INPUT"
	ErrCodeUnauthorized      = "ERR_UNAUTHORIZED"
	ErrCodeNotFound          = "ERR_NOT_FOUND"
	ErrCodeRateLimited       = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge   = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRender            = "ERR_RENDER"
	ErrCodeUnsupportedExport = "ERR_UNSUPPORTED_EXPORT"
	ErrCodePopupBlocked      = "ERR_POPUP_BLOCKED"
	ErrCodeUpload            = "ERR_UPLOAD"
	ErrCodeMetadataWrite     = "ERR_METADATA_WRITE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// pipeline failures
	ErrCodeRender:            http.StatusInternalServerError,
	ErrCodeUnsupportedExport: http.StatusUnprocessableEntity,
	ErrCodePopupBlocked:      http.StatusConflict,
	ErrCodeUpload:            http.StatusBadGateway,
	ErrCodeMetadataWrite:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodes maps domain error codes to API error codes
var domainCodes = map[string]string{
	shared.ErrCodeNotFound:          ErrCodeNotFound,
	shared.ErrCodeInvalidInput:      ErrCodeInvalidInput,
	shared.ErrCodeUnauthorized:      ErrCodeUnauthorized,
	shared.ErrCodeValidation:        ErrCodeValidation,
	shared.ErrCodeMissingField:      ErrCodeValidation,
	shared.ErrCodeRender:            ErrCodeRender,
	shared.ErrCodePopupBlocked:      ErrCodePopupBlocked,
	shared.ErrCodeUpload:            ErrCodeUpload,
	shared.ErrCodeMetadataWrite:     ErrCodeMetadataWrite,
	shared.ErrCodeUnsupportedExport: ErrCodeUnsupportedExport,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Codes already in API form, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodes[code]; ok {
		return apiCode
	}
	return code
}
