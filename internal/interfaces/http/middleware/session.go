package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// Session context keys
const (
	SessionTokenKey = "session_token"
	IdentityKey     = "identity"
)

// Session guarantees every request carries a session token: an existing
// cookie is reused, otherwise a fresh token is minted and set on the
// response. The identity resolved for cart and order scoping is the
// authenticated customer ID when present, falling back to the session token.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.MaxAge / time.Second)
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || !validSessionToken(token) {
			token = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   maxAge,
				Secure:   cfg.Secure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(SessionTokenKey, token)

		identity := GetCustomerID(c)
		if identity == "" {
			identity = token
		}
		c.Set(IdentityKey, identity)

		c.Next()
	}
}

// validSessionToken rejects tokens that are not UUIDs so a tampered cookie
// cannot pick an arbitrary cart key.
func validSessionToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

// GetSessionToken returns the session token set by the Session middleware
func GetSessionToken(c *gin.Context) string {
	return c.GetString(SessionTokenKey)
}

// GetIdentity returns the cart ownership identity for the request
func GetIdentity(c *gin.Context) string {
	return c.GetString(IdentityKey)
}
