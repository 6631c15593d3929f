package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CatalogService serves the customer-facing, read-only catalog views:
// channel listing, channel menus and product detail.
type CatalogService struct {
	channelRepo catalog.ChannelRepository
	productRepo catalog.ProductRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(channelRepo catalog.ChannelRepository, productRepo catalog.ProductRepository) *CatalogService {
	return &CatalogService{
		channelRepo: channelRepo,
		productRepo: productRepo,
	}
}

// ListChannels returns all active channels.
func (s *CatalogService) ListChannels(ctx context.Context) ([]ChannelResponse, error) {
	channels, err := s.channelRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ChannelResponse, 0, len(channels))
	for i := range channels {
		resp = append(resp, toChannelResponse(&channels[i]))
	}
	return resp, nil
}

// ChannelMenu returns the categories of a channel and the online products of
// the selected category. When no category is given the channel's first
// category is selected; a channel without categories yields an empty menu.
func (s *CatalogService) ChannelMenu(ctx context.Context, channelID uuid.UUID, categoryID *uuid.UUID) (*MenuResponse, error) {
	channel, err := s.channelRepo.FindByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	categories, err := s.channelRepo.FindCategories(ctx, channelID)
	if err != nil {
		return nil, err
	}

	menu := &MenuResponse{
		Channel:    toChannelResponse(channel),
		Categories: make([]CategoryResponse, 0, len(categories)),
		Products:   []ProductSummaryResponse{},
	}
	for i := range categories {
		menu.Categories = append(menu.Categories, toCategoryResponse(&categories[i]))
	}

	var selected *catalog.Category
	if categoryID != nil {
		for i := range categories {
			if categories[i].ID == *categoryID {
				selected = &categories[i]
				break
			}
		}
		// A category not exposed on this channel is treated as unknown.
		if selected == nil {
			return nil, shared.ErrNotFound
		}
	} else if len(categories) > 0 {
		selected = &categories[0]
	}

	if selected == nil {
		return menu, nil
	}

	sel := toCategoryResponse(selected)
	menu.SelectedCategory = &sel

	products, err := s.productRepo.FindOnlineByCategory(ctx, selected.ID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		menu.Products = append(menu.Products, ProductSummaryResponse{
			ID:   products[i].ID,
			SKU:  products[i].SKU,
			Name: products[i].Name,
		})
	}
	return menu, nil
}

// ProductDetail returns the full view of one product: its variants, linked
// additives and media gallery.
func (s *CatalogService) ProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.productRepo.FindVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	additives, err := s.productRepo.FindAdditivesForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	images, err := s.productRepo.FindImages(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &ProductDetailResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Variants:    make([]VariantDetailResponse, 0, len(variants)),
		Additives:   make([]AdditiveDetailResponse, 0, len(additives)),
		Images:      make([]string, 0, len(images)),
	}
	for i := range variants {
		resp.Variants = append(resp.Variants, VariantDetailResponse{
			ID:    variants[i].ID,
			Code:  variants[i].Code,
			Name:  variants[i].Name,
			Price: variants[i].Price,
		})
	}
	for i := range additives {
		resp.Additives = append(resp.Additives, AdditiveDetailResponse{
			ID:    additives[i].ID,
			Name:  additives[i].Name,
			Price: additives[i].Price,
			Image: additives[i].Image,
		})
	}
	for i := range images {
		resp.Images = append(resp.Images, images[i].URL)
	}
	return resp, nil
}
