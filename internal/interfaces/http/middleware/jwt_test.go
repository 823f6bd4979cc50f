package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sepur/finance/internal/infrastructure/auth"
	"github.com/sepur/finance/internal/infrastructure/config"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-at-least-32-characters"

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: testJWTSecret,
		Issuer: "finance-test",
	})
}

func newJWTRouter(svc *auth.JWTService, skip ...string) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(JWTMiddlewareConfig{Validator: svc, SkipPaths: skip}))
	handler := func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"subject":     claims.Subject,
			"ctx_subject": logger.Subject(c.Request.Context()),
		})
	}
	router.GET("/api/export", handler)
	router.GET("/health", handler)
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.Generate(auth.GenerateInput{Subject: "user-42", TTL: time.Hour})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+token)
	newJWTRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":"user-42","ctx_subject":"user-42"}`, w.Body.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService()
	other := auth.NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "finance-test"})
	foreign, _, err := other.Generate(auth.GenerateInput{Subject: "user-42", TTL: time.Hour})
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "finance-test",
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name          string
		header        string
		wantChallenge string
	}{
		{"missing header", "", "Bearer"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "Bearer"},
		{"garbage token", "Bearer not-a-jwt", "Bearer"},
		{"foreign signature", "Bearer " + foreign, "Bearer"},
		{"expired", "Bearer " + expired, `Bearer error="invalid_token", error_description="token expired"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			newJWTRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			assert.Equal(t, tt.wantChallenge, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	newJWTRouter(newTestJWTService(), "/health").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}
