package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// CheckoutRequest carries the customer details needed to place an order for
// the current cart.
type CheckoutRequest struct {
	ChannelID       uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	Type            order.OrderType
	ShippingAddress *AddressRequest
	BillingAddress  *AddressRequest
}

// AddressRequest is one address supplied at checkout.
type AddressRequest struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	Country   string
	Postcode  string
	Phone     string
}

func (a *AddressRequest) toAddress(orderID uuid.UUID, addrType order.AddressType) order.Address {
	return order.Address{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Type:       addrType,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Street:     a.Street,
		City:       a.City,
		Country:    a.Country,
		Postcode:   a.Postcode,
		Phone:      a.Phone,
	}
}

// OrderItemResponse is one placed order line.
type OrderItemResponse struct {
	SKU       string          `json:"sku"`
	Qty       int             `json:"qty"`
	Variant   string          `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse is a placed order as returned to the customer.
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Code        string              `json:"code"`
	Status      order.OrderStatus   `json:"status"`
	Type        order.OrderType     `json:"type"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		Code:        o.Code,
		Status:      o.Status,
		Type:        o.Type,
		TotalAmount: o.TotalAmount,
		Items:       make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
	}
	for i := range o.Items {
		item := OrderItemResponse{
			SKU: o.Items[i].SKU,
			Qty: o.Items[i].Qty,
		}
		if o.Items[i].Variant != nil {
			item.Variant = o.Items[i].Variant.Name
			item.UnitPrice = o.Items[i].Variant.Price
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
