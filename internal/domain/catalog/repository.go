package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ChannelRepository defines the interface for channel persistence
type ChannelRepository interface {
	// FindByID finds a channel by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Channel, error)

	// FindActive finds all active channels ordered by name
	FindActive(ctx context.Context) ([]Channel, error)

	// FindCategories finds the categories exposed on a channel
	FindCategories(ctx context.Context, channelID uuid.UUID) ([]Category, error)

	// Save creates or updates a channel
	Save(ctx context.Context, channel *Channel) error
}

// ProductRepository defines the interface for catalog read/write persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindOnlineByCategory finds online products in a category
	FindOnlineByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)

	// FindVariant finds a variant by ID scoped to its product
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*ProductVariant, error)

	// FindVariants finds all variants of a product
	FindVariants(ctx context.Context, productID uuid.UUID) ([]ProductVariant, error)

	// FindAdditivesByIDs finds additives by their IDs
	FindAdditivesByIDs(ctx context.Context, ids []uuid.UUID) ([]Additive, error)

	// FindAdditivesForProduct finds the additives linked to a product
	FindAdditivesForProduct(ctx context.Context, productID uuid.UUID) ([]Additive, error)

	// FindImages finds the media gallery entries of a product
	FindImages(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
