package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CatalogLookup adapts the catalog repositories to the read-only collaborator
// the cart needs when denormalizing line items.
type CatalogLookup struct {
	products catalog.ProductRepository
}

// NewCatalogLookup creates a new CatalogLookup
func NewCatalogLookup(products catalog.ProductRepository) *CatalogLookup {
	return &CatalogLookup{products: products}
}

// LookupVariant resolves a variant scoped to its product together with the
// product name for the line item snapshot.
func (l *CatalogLookup) LookupVariant(ctx context.Context, productID, variantID uuid.UUID) (*cart.VariantSnapshot, error) {
	product, err := l.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variant, err := l.products.FindVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	return &cart.VariantSnapshot{
		VariantID:   variant.ID,
		VariantName: variant.Name,
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       variant.Price,
	}, nil
}

// LookupAdditives resolves the requested additive IDs. The repository treats
// any unknown ID as not found for the whole set.
func (l *CatalogLookup) LookupAdditives(ctx context.Context, ids []uuid.UUID) ([]cart.AdditiveSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	additives, err := l.products.FindAdditivesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	snapshots := make([]cart.AdditiveSnapshot, len(additives))
	for i, a := range additives {
		snapshots[i] = cart.AdditiveSnapshot{
			ID:    a.ID,
			Name:  a.Name,
			Price: a.Price,
			Image: a.Image,
		}
	}
	return snapshots, nil
}

// Ensure CatalogLookup implements cart.CatalogLookup
var _ cart.CatalogLookup = (*CatalogLookup)(nil)
