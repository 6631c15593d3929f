package router

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// CatalogRoutes exposes the customer-facing catalog browse endpoints
type CatalogRoutes struct {
	catalog *handler.CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes registrar
func NewCatalogRoutes(catalog *handler.CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{catalog: catalog}
}

// RegisterRoutes implements RouteRegistrar
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/channels", r.catalog.ListChannels)
	rg.GET("/channels/:id/menu", r.catalog.Menu)
	rg.GET("/products/:id", r.catalog.ProductDetail)
}

// CartRoutes exposes the shopping cart endpoints
type CartRoutes struct {
	cart *handler.CartHandler
}

// NewCartRoutes creates a new CartRoutes registrar
func NewCartRoutes(cart *handler.CartHandler) *CartRoutes {
	return &CartRoutes{cart: cart}
}

// RegisterRoutes implements RouteRegistrar
func (r *CartRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/cart")
	group.GET("", r.cart.View)
	group.POST("/items", r.cart.AddItem)
	group.DELETE("/items/:line_key", r.cart.RemoveItem)
	group.DELETE("", r.cart.Clear)
}

// OrderRoutes exposes checkout and order history endpoints
type OrderRoutes struct {
	checkout *handler.CheckoutHandler
}

// NewOrderRoutes creates a new OrderRoutes registrar
func NewOrderRoutes(checkout *handler.CheckoutHandler) *OrderRoutes {
	return &OrderRoutes{checkout: checkout}
}

// RegisterRoutes implements RouteRegistrar
func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", r.checkout.Checkout)
	rg.GET("/orders", r.checkout.ListOrders)
}
