package middleware

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/sepur/finance/internal/infrastructure/auth"
	"github.com/sepur/finance/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTSubjectKey = "jwt_subject"
	AuthHeaderKey = "Authorization"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// OnError writes the rejection; the default writes {"error": "Unauthorized"} with 401
	OnError func(c *gin.Context, err error)
}

// JWTAuth requires a valid bearer token and stores its claims on the request
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	onError := cfg.OnError
	if onError == nil {
		onError = unauthorized
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		token := auth.BearerToken(c.GetHeader(AuthHeaderKey))
		if token == "" {
			onError(c, auth.ErrMissingToken)
			return
		}

		claims, err := cfg.Validator.Validate(token)
		if err != nil {
			logger.L(c.Request.Context()).Debug("Token rejected", zap.Error(err))
			onError(c, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTSubjectKey, claims.Subject)
		c.Request = c.Request.WithContext(logger.WithSubject(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

func unauthorized(c *gin.Context, err error) {
	msg := "Unauthorized"
	if errors.Is(err, auth.ErrExpiredToken) {
		c.Header("WWW-Authenticate", `Bearer error="invalid_token", error_description="token expired"`)
	} else {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// GetClaims returns the claims stored by JWTAuth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
