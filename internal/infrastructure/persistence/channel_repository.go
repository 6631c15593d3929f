package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormChannelRepository implements ChannelRepository using GORM
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GormChannelRepository
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// FindByID finds a channel by its ID
func (r *GormChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Channel, error) {
	var channel catalog.Channel
	if err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

// FindActive finds all active channels ordered by name
func (r *GormChannelRepository) FindActive(ctx context.Context) ([]catalog.Channel, error) {
	var channels []catalog.Channel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// FindCategories finds the categories exposed on a channel, in link order
func (r *GormChannelRepository) FindCategories(ctx context.Context, channelID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Joins("JOIN category_channels ON category_channels.category_id = categories.id").
		Where("category_channels.channel_id = ?", channelID).
		Order("category_channels.created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a channel
func (r *GormChannelRepository) Save(ctx context.Context, channel *catalog.Channel) error {
	return r.db.WithContext(ctx).Save(channel).Error
}

// Ensure GormChannelRepository implements ChannelRepository
var _ catalog.ChannelRepository = (*GormChannelRepository)(nil)
