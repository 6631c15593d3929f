package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// MockCatalogLookup mocks cart.CatalogLookup
type MockCatalogLookup struct {
	mock.Mock
}

func (m *MockCatalogLookup) LookupVariant(ctx context.Context, productID, variantID uuid.UUID) (*cart.VariantSnapshot, error) {
	args := m.Called(ctx, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.VariantSnapshot), args.Error(1)
}

func (m *MockCatalogLookup) LookupAdditives(ctx context.Context, ids []uuid.UUID) ([]cart.AdditiveSnapshot, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.AdditiveSnapshot), args.Error(1)
}

// memStore is a minimal in-process cart.Store for handler tests
type memStore struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func newMemStore() *memStore {
	return &memStore{carts: make(map[string]*cart.Cart)}
}

func (s *memStore) Get(ctx context.Context, identity string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[identity]; ok {
		return c, nil
	}
	return cart.New(identity), nil
}

func (s *memStore) Update(ctx context.Context, identity string, mutate func(*cart.Cart) error) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[identity]
	if !ok {
		c = cart.New(identity)
	}
	if err := mutate(c); err != nil {
		if errors.Is(err, cart.ErrNoChange) {
			return c, nil
		}
		return nil, err
	}
	s.carts[identity] = c
	return c, nil
}

func (s *memStore) Touch(ctx context.Context, identity string) error { return nil }

func (s *memStore) Clear(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, identity)
	return nil
}

// failingStore always reports the backing store as unreachable
type failingStore struct {
	calls int
}

func (s *failingStore) fail(op string) error {
	s.calls++
	return fmt.Errorf("cart store %s: %w", op, shared.ErrStoreUnavailable)
}

func (s *failingStore) Get(ctx context.Context, identity string) (*cart.Cart, error) {
	return nil, s.fail("get")
}

func (s *failingStore) Update(ctx context.Context, identity string, mutate func(*cart.Cart) error) (*cart.Cart, error) {
	return nil, s.fail("update")
}

func (s *failingStore) Touch(ctx context.Context, identity string) error { return s.fail("touch") }
func (s *failingStore) Clear(ctx context.Context, identity string) error { return s.fail("clear") }

func newCartTestRouter(store cart.Store, lookup cart.CatalogLookup, identity string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	h := NewCartHandler(cartapp.NewCartService(store, lookup))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	})
	r.GET("/cart", h.View)
	r.POST("/cart/items", h.AddItem)
	r.DELETE("/cart/items/:line_key", h.RemoveItem)
	r.DELETE("/cart", h.Clear)
	return r
}

func decodeResponse(t *testing.T, body *bytes.Buffer) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestCartHandler_View(t *testing.T) {
	t.Run("fresh identity gets an empty cart", func(t *testing.T) {
		r := newCartTestRouter(newMemStore(), new(MockCatalogLookup), "session-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Empty(t, data["items"])
		assert.Equal(t, "0", data["total_price"])
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	snapshot := &cart.VariantSnapshot{
		VariantID:   variantID,
		VariantName: "Large",
		ProductID:   productID,
		ProductName: "Margherita",
		Price:       decimal.NewFromFloat(9.50),
	}

	t.Run("adds a valid line item", func(t *testing.T) {
		lookup := new(MockCatalogLookup)
		lookup.On("LookupVariant", mock.Anything, productID, variantID).Return(snapshot, nil)
		r := newCartTestRouter(newMemStore(), lookup, "session-1")

		body, _ := json.Marshal(gin.H{
			"product_id": productID.String(),
			"variant_id": variantID.String(),
			"quantity":   2,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		items := data["items"].([]interface{})
		require.Len(t, items, 1)
		line := items[0].(map[string]interface{})
		assert.Equal(t, float64(2), line["quantity"])
		assert.Equal(t, "19", line["total_price"])
		lookup.AssertExpectations(t)
	})

	t.Run("omitted quantity defaults to 1", func(t *testing.T) {
		lookup := new(MockCatalogLookup)
		lookup.On("LookupVariant", mock.Anything, productID, variantID).Return(snapshot, nil)
		r := newCartTestRouter(newMemStore(), lookup, "session-1")

		body, _ := json.Marshal(gin.H{
			"product_id": productID.String(),
			"variant_id": variantID.String(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		items := data["items"].([]interface{})
		require.Len(t, items, 1)
		line := items[0].(map[string]interface{})
		assert.Equal(t, float64(1), line["quantity"])
		lookup.AssertExpectations(t)
	})

	t.Run("rejects non-positive quantity before touching the catalog", func(t *testing.T) {
		lookup := new(MockCatalogLookup)
		r := newCartTestRouter(newMemStore(), lookup, "session-1")

		body, _ := json.Marshal(gin.H{
			"product_id": productID.String(),
			"variant_id": variantID.String(),
			"quantity":   0,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		lookup.AssertNotCalled(t, "LookupVariant")
	})

	t.Run("rejects malformed variant id", func(t *testing.T) {
		r := newCartTestRouter(newMemStore(), new(MockCatalogLookup), "session-1")

		body, _ := json.Marshal(gin.H{
			"product_id": productID.String(),
			"variant_id": "not-a-uuid",
			"quantity":   1,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown variant maps to 404", func(t *testing.T) {
		lookup := new(MockCatalogLookup)
		lookup.On("LookupVariant", mock.Anything, productID, variantID).Return(nil, shared.ErrNotFound)
		r := newCartTestRouter(newMemStore(), lookup, "session-1")

		body, _ := json.Marshal(gin.H{
			"product_id": productID.String(),
			"variant_id": variantID.String(),
			"quantity":   1,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w.Body)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	t.Run("removing an absent key is a no-op", func(t *testing.T) {
		r := newCartTestRouter(newMemStore(), new(MockCatalogLookup), "session-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+uuid.New().String(), nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body)
		assert.True(t, resp.Success)
	})
}

func TestCartHandler_Clear(t *testing.T) {
	t.Run("clearing an absent cart succeeds", func(t *testing.T) {
		r := newCartTestRouter(newMemStore(), new(MockCatalogLookup), "session-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestCartHandler_StoreUnavailable(t *testing.T) {
	t.Run("retries a bounded number of times then maps to 503", func(t *testing.T) {
		store := &failingStore{}
		r := newCartTestRouter(store, new(MockCatalogLookup), "session-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, storeRetryAttempts, store.calls)

		resp := decodeResponse(t, w.Body)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeStoreUnavailable, resp.Error.Code)
	})
}
