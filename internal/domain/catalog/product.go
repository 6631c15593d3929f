package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusOnline  ProductStatus = "online"
	ProductStatusOffline ProductStatus = "offline"
)

// Product is a catalog entry identified by SKU. Pricing lives on its
// variants; additives are linked through ProductAdditive.
type Product struct {
	shared.BaseEntity
	SKU         string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name        string        `gorm:"type:varchar(200);not null"`
	Description string        `gorm:"type:text"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'offline';index"`
	CategoryID  uuid.UUID     `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the offline state
func NewProduct(sku, name string, categoryID uuid.UUID) (*Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product category is required")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        strings.ToUpper(strings.TrimSpace(sku)),
		Name:       name,
		Status:     ProductStatusOffline,
		CategoryID: categoryID,
	}, nil
}

// Publish makes the product visible on channel menus.
func (p *Product) Publish() {
	p.Status = ProductStatusOnline
}

// IsOnline reports whether the product is customer-visible.
func (p *Product) IsOnline() bool {
	return p.Status == ProductStatusOnline
}

// Package is a sellable unit of measure (e.g. small/large, 6-pack) with its
// own base price that variants reference.
type Package struct {
	shared.BaseEntity
	Code  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Package) TableName() string {
	return "packages"
}

// ProductVariant is a concrete, priced purchasable form of a product.
type ProductVariant struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code      string          `gorm:"type:varchar(100);not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PackageID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant for a product
func NewProductVariant(productID uuid.UUID, code, name string, price decimal.Decimal) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant must belong to a product")
	}
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant code cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant price cannot be negative")
	}
	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		Name:       name,
		Price:      price,
	}, nil
}

// Additive is an optional add-on selectable with a variant, priced
// independently.
type Additive struct {
	shared.BaseEntity
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Image string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Additive) TableName() string {
	return "additives"
}

// ProductAdditive links an additive to a product it may be added to.
type ProductAdditive struct {
	shared.BaseEntity
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AdditiveID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductAdditive) TableName() string {
	return "product_additives"
}

// ProductImage is one media gallery entry for a product.
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}
