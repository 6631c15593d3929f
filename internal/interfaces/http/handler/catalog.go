package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogHandler handles customer-facing catalog API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListChannels returns the active channels
func (h *CatalogHandler) ListChannels(c *gin.Context) {
	channels, err := h.catalogService.ListChannels(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, channels)
}

// Menu returns the categories of a channel and the online products of the
// selected category. The category defaults to the channel's first one.
func (h *CatalogHandler) Menu(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid channel ID")
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	menu, err := h.catalogService.ChannelMenu(c.Request.Context(), channelID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, menu)
}

// ProductDetail returns one product with variants, additives and images
func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	detail, err := h.catalogService.ProductDetail(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}
