package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/infrastructure/auth"
)

// Auth context keys
const (
	CustomerClaimsKey = "customer_claims"
	CustomerIDKey     = "customer_id"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// OptionalCustomerAuth extracts customer claims when a valid bearer token is
// present. Anonymous requests pass through untouched; the session cookie
// identifies them instead.
func OptionalCustomerAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CustomerClaimsKey, claims)
		c.Set(CustomerIDKey, claims.CustomerID)
		c.Next()
	}
}

// GetCustomerID retrieves the authenticated customer ID, or "" when anonymous
func GetCustomerID(c *gin.Context) string {
	if customerID, exists := c.Get(CustomerIDKey); exists {
		if id, ok := customerID.(string); ok {
			return id
		}
	}
	return ""
}
