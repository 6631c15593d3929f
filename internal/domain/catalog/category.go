package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Category groups products. A category is visible on a channel only when an
// explicit CategoryChannel link exists.
type Category struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(code, name string) (*Category, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category code and name are required")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		Name:       name,
	}, nil
}

// CategoryChannel links a category to a channel it is exposed on.
type CategoryChannel struct {
	shared.BaseEntity
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	ChannelID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CategoryChannel) TableName() string {
	return "category_channels"
}
