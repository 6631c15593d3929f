package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout and order history endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *orderapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// AddressRequest is one address supplied at checkout
type AddressRequest struct {
	FirstName string `json:"first_name" binding:"max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Street    string `json:"street" binding:"required,max=255"`
	City      string `json:"city" binding:"required,max=255"`
	Country   string `json:"country" binding:"required,max=255"`
	Postcode  string `json:"postcode" binding:"required,max=20"`
	Phone     string `json:"phone" binding:"max=20"`
}

// CheckoutRequest represents a request to place an order for the current cart
type CheckoutRequest struct {
	ChannelID       string          `json:"channel_id" binding:"required,uuid"`
	FirstName       string          `json:"first_name" binding:"required,max=255"`
	LastName        string          `json:"last_name" binding:"required,max=255"`
	Email           string          `json:"email" binding:"required,email,max=255"`
	Type            string          `json:"type" binding:"omitempty,oneof=online offline"`
	ShippingAddress *AddressRequest `json:"shipping_address" binding:"omitempty"`
	BillingAddress  *AddressRequest `json:"billing_address" binding:"omitempty"`
}

// Checkout places an order from the caller's cart and clears the cart
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orderType := order.OrderTypeOnline
	if req.Type != "" {
		orderType = order.OrderType(req.Type)
	}

	appReq := orderapp.CheckoutRequest{
		ChannelID: uuid.MustParse(req.ChannelID),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Type:      orderType,
	}
	if req.ShippingAddress != nil {
		appReq.ShippingAddress = toAddressRequest(req.ShippingAddress)
	}
	if req.BillingAddress != nil {
		appReq.BillingAddress = toAddressRequest(req.BillingAddress)
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), identity, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOrders returns the caller's placed orders, newest first
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	orders, err := h.checkoutService.ListOrders(c.Request.Context(), identity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

func toAddressRequest(a *AddressRequest) *orderapp.AddressRequest {
	return &orderapp.AddressRequest{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Street:    a.Street,
		City:      a.City,
		Country:   a.Country,
		Postcode:  a.Postcode,
		Phone:     a.Phone,
	}
}
