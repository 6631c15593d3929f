package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartService handles shopping cart operations. Each operation resolves the
// caller's identity upstream, touches the cart's TTL, performs at most one
// atomic read-modify-write against the store and returns the updated view.
type CartService struct {
	store  cart.Store
	lookup cart.CatalogLookup
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, lookup cart.CatalogLookup) *CartService {
	return &CartService{
		store:  store,
		lookup: lookup,
	}
}

// ListItems returns the cart snapshot for the identity. A missing cart is an
// empty cart, never an error.
func (s *CartService) ListItems(ctx context.Context, identity string) (*CartResponse, error) {
	c, err := s.store.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// AddToCart resolves the variant and additives against the catalog, builds a
// fully-priced line item and merges it into the cart. The catalog snapshot is
// denormalized into the line so later catalog changes do not alter the cart.
func (s *CartService) AddToCart(ctx context.Context, identity string, req AddItemRequest) (*CartResponse, error) {
	if req.VariantID == uuid.Nil {
		return nil, cart.ErrMissingVariant
	}
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	variant, err := s.lookup.LookupVariant(ctx, req.ProductID, req.VariantID)
	if err != nil {
		return nil, err
	}

	candidate := cart.LineItem{
		ProductID: variant.ProductID,
		Name:      variant.ProductName,
		Variant: cart.VariantRef{
			ID:   variant.VariantID,
			Name: variant.VariantName,
		},
		Quantity:      req.Quantity,
		UnitPrice:     variant.Price,
		AdditiveTotal: decimal.Zero,
	}

	if len(req.AdditiveIDs) > 0 {
		additives, err := s.lookup.LookupAdditives(ctx, req.AdditiveIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range additives {
			candidate.Additives = append(candidate.Additives, cart.AdditiveLine{
				ID:    a.ID,
				Name:  a.Name,
				Price: a.Price,
				Image: a.Image,
			})
			candidate.AdditiveTotal = candidate.AdditiveTotal.Add(a.Price)
		}
	}

	updated, err := s.store.Update(ctx, identity, func(c *cart.Cart) error {
		return c.Add(candidate)
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(updated), nil
}

// RemoveFromCart deletes the line with the given key. Removing an absent key
// is an idempotent no-op; the TTL is still refreshed since the cart was
// accessed.
func (s *CartService) RemoveFromCart(ctx context.Context, identity, lineKey string) (*CartResponse, error) {
	if err := s.store.Touch(ctx, identity); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, identity, func(c *cart.Cart) error {
		if !c.Remove(lineKey) {
			return cart.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(updated), nil
}

// ClearCart deletes the whole cart key so the next access starts from empty.
// Idempotent.
func (s *CartService) ClearCart(ctx context.Context, identity string) error {
	return s.store.Clear(ctx, identity)
}
