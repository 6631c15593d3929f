package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// storeRetryAttempts bounds how often a request retries a cart operation
// that failed because the store was unreachable. Backoff doubles per attempt.
const (
	storeRetryAttempts = 3
	storeRetryBaseWait = 50 * time.Millisecond
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest represents a request to add a line item to the cart.
// Quantity is optional and defaults to 1; when present it must be >= 1.
type AddItemRequest struct {
	ProductID   string   `json:"product_id" binding:"required,uuid"`
	VariantID   string   `json:"variant_id" binding:"required,uuid"`
	AdditiveIDs []string `json:"additive_ids" binding:"omitempty,dive,uuid"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=1"`
}

// View returns the current cart for the caller's identity
func (h *CartHandler) View(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	resp, err := withStoreRetry(c, func() (*cartapp.CartResponse, error) {
		return h.cartService.ListItems(c.Request.Context(), identity)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem merges a line item into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	appReq := cartapp.AddItemRequest{
		ProductID: uuid.MustParse(req.ProductID),
		VariantID: uuid.MustParse(req.VariantID),
		Quantity:  quantity,
	}
	for _, id := range req.AdditiveIDs {
		appReq.AdditiveIDs = append(appReq.AdditiveIDs, uuid.MustParse(id))
	}

	resp, err := withStoreRetry(c, func() (*cartapp.CartResponse, error) {
		return h.cartService.AddToCart(c.Request.Context(), identity, appReq)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a line item by its line key. Unknown keys are a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	lineKey := c.Param("line_key")
	if lineKey == "" {
		h.BadRequest(c, "line_key is required")
		return
	}

	resp, err := withStoreRetry(c, func() (*cartapp.CartResponse, error) {
		return h.cartService.RemoveFromCart(c.Request.Context(), identity, lineKey)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	_, err := withStoreRetry(c, func() (struct{}, error) {
		return struct{}{}, h.cartService.ClearCart(c.Request.Context(), identity)
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// withStoreRetry runs op, retrying only when the cart store is unreachable.
// Every other failure, validation errors included, returns immediately.
func withStoreRetry[T any](c *gin.Context, op func() (T, error)) (T, error) {
	var result T
	var err error
	wait := storeRetryBaseWait
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		result, err = op()
		if err == nil || !errors.Is(err, shared.ErrStoreUnavailable) {
			return result, err
		}
		if attempt == storeRetryAttempts-1 {
			break
		}
		select {
		case <-c.Request.Context().Done():
			return result, err
		case <-time.After(wait):
		}
		wait *= 2
	}
	return result, err
}
