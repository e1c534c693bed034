package testutil

import (
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/middleware"
)

// MockValidatedClaims creates validated claims for an operator token
func MockValidatedClaims(subject, issuer string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: strings.Join(scopes, " "),
		},
	}
}

// MockAuth returns a middleware that authenticates every request as operatorID
func MockAuth(operatorID string, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, operatorID, "https://test.auth0.com/", scopes)
		c.Next()
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, operatorID string, issuer string, scopes []string) {
	c.Set("operator_id", operatorID)
	c.Set("validated_claims", MockValidatedClaims(operatorID, issuer, scopes))
}
