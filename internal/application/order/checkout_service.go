package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = shared.NewDomainError("INVALID_STATE", "Cannot check out an empty cart")

// CheckoutService turns a cart into an order. The order rows carry the
// cart's denormalized snapshot, so the order total matches what the customer
// saw even if the catalog changed meanwhile. On success the cart is cleared.
type CheckoutService struct {
	cartStore   cart.Store
	channelRepo catalog.ChannelRepository
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartStore cart.Store,
	channelRepo catalog.ChannelRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
) *CheckoutService {
	return &CheckoutService{
		cartStore:   cartStore,
		channelRepo: channelRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Checkout places an order for the identity's current cart.
func (s *CheckoutService) Checkout(ctx context.Context, identity string, req CheckoutRequest) (*OrderResponse, error) {
	c, err := s.cartStore.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	channel, err := s.channelRepo.FindByID(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(channel.ID, identity, newOrderCode(), req.FirstName, req.LastName, req.Email, req.Type)
	if err != nil {
		return nil, err
	}

	for i := range c.Items {
		line := &c.Items[i]

		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		item := order.Item{
			BaseEntity: shared.NewBaseEntity(),
			SKU:        product.SKU,
			Qty:        line.Quantity,
		}
		variant := order.ItemVariant{
			BaseEntity:  shared.NewBaseEntity(),
			OrderItemID: item.ID,
			Code:        line.Variant.ID.String(),
			Name:        line.Variant.Name,
			Price:       line.UnitPrice,
		}
		item.Variant = &variant
		for _, a := range line.Additives {
			item.Additives = append(item.Additives, order.ItemAdditive{
				BaseEntity:  shared.NewBaseEntity(),
				OrderItemID: item.ID,
				Name:        a.Name,
				Price:       a.Price,
			})
		}
		o.AddItem(item, line.TotalPrice())
	}

	if req.ShippingAddress != nil {
		o.Addresses = append(o.Addresses, req.ShippingAddress.toAddress(o.ID, order.AddressTypeShipping))
	}
	if req.BillingAddress != nil {
		o.Addresses = append(o.Addresses, req.BillingAddress.toAddress(o.ID, order.AddressTypeBilling))
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	// The cart served its purpose; a clear failure leaves a stale cart but
	// the order is already placed, so surface it to the caller.
	if err := s.cartStore.Clear(ctx, identity); err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ListOrders returns the orders placed by an identity.
func (s *CheckoutService) ListOrders(ctx context.Context, identity string) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *toOrderResponse(&orders[i]))
	}
	return resp, nil
}

// newOrderCode generates a short human-readable order code.
func newOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
