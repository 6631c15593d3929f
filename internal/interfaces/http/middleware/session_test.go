package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/config"
)

func sessionTestConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "storefront_session",
		MaxAge:     7 * 24 * time.Hour,
	}
}

func newSessionTestRouter(cfg config.SessionConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seenIdentity string
	r := gin.New()
	r.Use(Session(cfg))
	r.GET("/probe", func(c *gin.Context) {
		seenIdentity = GetIdentity(c)
		c.Status(http.StatusOK)
	})
	return r, &seenIdentity
}

func TestSession_MintsCookieWhenAbsent(t *testing.T) {
	r, identity := newSessionTestRouter(sessionTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "storefront_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)
	assert.Equal(t, cookies[0].Value, *identity)
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	r, identity := newSessionTestRouter(sessionTestConfig())

	token := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, token, *identity)
}

func TestSession_ReplacesTamperedCookie(t *testing.T) {
	r, identity := newSessionTestRouter(sessionTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: "../../evil"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../evil", cookies[0].Value)
	assert.Equal(t, cookies[0].Value, *identity)
}

func TestSession_AuthenticatedCustomerWinsOverSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seenIdentity string
	r := gin.New()
	customerID := uuid.New().String()
	// Simulates OptionalCustomerAuth having resolved a customer.
	r.Use(func(c *gin.Context) {
		c.Set(CustomerIDKey, customerID)
		c.Next()
	})
	r.Use(Session(sessionTestConfig()))
	r.GET("/probe", func(c *gin.Context) {
		seenIdentity = GetIdentity(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: uuid.New().String()})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, customerID, seenIdentity)
}
