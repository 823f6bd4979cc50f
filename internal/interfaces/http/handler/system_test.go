package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		nilDB      bool
		wantStatus int
		wantDB     string
	}{
		{"database reachable", nil, false, http.StatusOK, "ok"},
		{"database down", errors.New("dial tcp: refused"), false, http.StatusServiceUnavailable, "unreachable"},
		{"no database configured", nil, true, http.StatusOK, "skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h *SystemHandler
			if tt.nilDB {
				h = NewSystemHandler("finance-api", "1.2.0", nil)
			} else {
				db := new(MockPinger)
				db.On("Ping", mock.Anything).Return(tt.pingErr)
				h = NewSystemHandler("finance-api", "1.2.0", db)
			}
			r := gin.New()
			r.GET("/health", h.Health)

			w := performRequest(r, http.MethodGet, "/health", "")

			require.Equal(t, tt.wantStatus, w.Code)
			var resp struct {
				Data HealthResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantDB, resp.Data.Database)
			assert.Equal(t, "1.2.0", resp.Data.Version)
		})
	}
}
