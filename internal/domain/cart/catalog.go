package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantSnapshot is what the catalog collaborator resolves for a variant at
// add-time.
type VariantSnapshot struct {
	VariantID   uuid.UUID
	VariantName string
	ProductID   uuid.UUID
	ProductName string
	Price       decimal.Decimal
}

// AdditiveSnapshot is what the catalog collaborator resolves for an additive
// at add-time.
type AdditiveSnapshot struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Image string
}

// CatalogLookup is the read-only product/pricing collaborator the cart uses
// to denormalize catalog data into line items.
type CatalogLookup interface {
	// LookupVariant resolves a variant belonging to the given product.
	// Returns shared.ErrNotFound when either does not exist.
	LookupVariant(ctx context.Context, productID, variantID uuid.UUID) (*VariantSnapshot, error)

	// LookupAdditives resolves the given additive IDs. Returns
	// shared.ErrNotFound when any ID is unknown.
	LookupAdditives(ctx context.Context, ids []uuid.UUID) ([]AdditiveSnapshot, error)
}
