package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// AddItemRequest is the application-level request to add a line to a cart.
// Quantity defaults are resolved by the transport layer; here it must be >= 1.
type AddItemRequest struct {
	ProductID   uuid.UUID
	VariantID   uuid.UUID
	AdditiveIDs []uuid.UUID
	Quantity    int
}

// VariantResponse mirrors the stored variant snapshot.
type VariantResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AdditiveResponse mirrors one stored additive snapshot.
type AdditiveResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// LineItemResponse is one cart line as returned to callers. TotalPrice is
// recomputed on every read.
type LineItemResponse struct {
	LineKey       string             `json:"line_key"`
	ProductID     uuid.UUID          `json:"product_id"`
	Name          string             `json:"name"`
	Variant       VariantResponse    `json:"variant"`
	Additives     []AdditiveResponse `json:"additives,omitempty"`
	Quantity      int                `json:"quantity"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	AdditiveTotal decimal.Decimal    `json:"additive_total"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
}

// CartResponse is the full cart view.
type CartResponse struct {
	Items      []LineItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

func toCartResponse(c *cart.Cart) *CartResponse {
	resp := &CartResponse{
		Items:      make([]LineItemResponse, 0, len(c.Items)),
		TotalPrice: c.TotalPrice(),
	}
	for i := range c.Items {
		resp.Items = append(resp.Items, toLineItemResponse(&c.Items[i]))
	}
	return resp
}

func toLineItemResponse(li *cart.LineItem) LineItemResponse {
	item := LineItemResponse{
		LineKey:       li.LineKey(),
		ProductID:     li.ProductID,
		Name:          li.Name,
		Variant:       VariantResponse{ID: li.Variant.ID, Name: li.Variant.Name},
		Quantity:      li.Quantity,
		UnitPrice:     li.UnitPrice,
		AdditiveTotal: li.AdditiveTotal,
		TotalPrice:    li.TotalPrice(),
	}
	for _, a := range li.Additives {
		item.Additives = append(item.Additives, AdditiveResponse{
			ID:    a.ID,
			Name:  a.Name,
			Price: a.Price,
			Image: a.Image,
		})
	}
	return item
}
