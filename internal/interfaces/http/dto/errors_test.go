package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sepur/finance/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUnsupportedExport, http.StatusUnprocessableEntity},
		{ErrCodePopupBlocked, http.StatusConflict},
		{ErrCodeUpload, http.StatusBadGateway},
		{ErrCodeRender, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.ErrCodeNotFound, ErrCodeNotFound},
		{shared.ErrCodeValidation, ErrCodeValidation},
		{shared.ErrCodeMissingField, ErrCodeValidation},
		{shared.ErrCodeRender, ErrCodeRender},
		{shared.ErrCodeUpload, ErrCodeUpload},
		{shared.ErrCodeUnsupportedExport, ErrCodeUnsupportedExport},
		{ErrCodeRateLimited, ErrCodeRateLimited},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeUpload, "Upload failed", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_UPLOAD","message":"Upload failed","request_id":"req-1"}}`, string(raw))

	raw, err = json.Marshal(NewErrorResponse(ErrCodeNotFound, "Invoice not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Invoice not found"}}`, string(raw))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Success)

	zero := NewSuccessResponseWithMeta(nil, 5, 1, 0)
	assert.Equal(t, 0, zero.Meta.TotalPages)
}
