package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindOnlineByCategory finds online products in a category ordered by name
func (r *GormProductRepository) FindOnlineByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND status = ?", categoryID, catalog.ProductStatusOnline).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindVariant finds a variant by ID scoped to its product. A variant ID that
// exists under a different product is treated as not found.
func (r *GormProductRepository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindVariants finds all variants of a product ordered by price
func (r *GormProductRepository) FindVariants(ctx context.Context, productID uuid.UUID) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("price ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindAdditivesByIDs finds additives by their IDs. Every requested ID must
// resolve; a missing one makes the whole lookup not found.
func (r *GormProductRepository) FindAdditivesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Additive, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var additives []catalog.Additive
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&additives).Error; err != nil {
		return nil, err
	}
	if len(additives) != len(ids) {
		return nil, shared.ErrNotFound
	}
	return additives, nil
}

// FindAdditivesForProduct finds the additives linked to a product
func (r *GormProductRepository) FindAdditivesForProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Additive, error) {
	var additives []catalog.Additive
	if err := r.db.WithContext(ctx).
		Model(&catalog.Additive{}).
		Joins("JOIN product_additives ON product_additives.additive_id = additives.id").
		Where("product_additives.product_id = ?", productID).
		Order("additives.name ASC").
		Find(&additives).Error; err != nil {
		return nil, err
	}
	return additives, nil
}

// FindImages finds the media gallery entries of a product
func (r *GormProductRepository) FindImages(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	var images []catalog.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
