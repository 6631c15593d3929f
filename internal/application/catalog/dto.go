package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ChannelResponse is one storefront as exposed to customers.
type ChannelResponse struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`
}

// CategoryResponse is one category on a channel menu.
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// ProductSummaryResponse is a product as listed on a menu.
type ProductSummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	SKU  string    `json:"sku"`
	Name string    `json:"name"`
}

// MenuResponse is the localized menu of one channel: its categories and the
// online products of the selected category.
type MenuResponse struct {
	Channel          ChannelResponse          `json:"channel"`
	Categories       []CategoryResponse       `json:"categories"`
	SelectedCategory *CategoryResponse        `json:"selected_category,omitempty"`
	Products         []ProductSummaryResponse `json:"products"`
}

// VariantDetailResponse is one purchasable variant on the product detail view.
type VariantDetailResponse struct {
	ID    uuid.UUID       `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AdditiveDetailResponse is one selectable additive on the product detail view.
type AdditiveDetailResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// ProductDetailResponse is the full product view used by the storefront modal.
type ProductDetailResponse struct {
	ID          uuid.UUID                `json:"id"`
	SKU         string                   `json:"sku"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Variants    []VariantDetailResponse  `json:"variants"`
	Additives   []AdditiveDetailResponse `json:"additives"`
	Images      []string                 `json:"images"`
}

func toChannelResponse(ch *catalog.Channel) ChannelResponse {
	return ChannelResponse{
		ID:      ch.ID,
		Code:    ch.Code,
		Name:    ch.Name,
		City:    ch.City,
		Address: ch.Address,
		Phone:   ch.Phone,
	}
}

func toCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Code: c.Code, Name: c.Name}
}
