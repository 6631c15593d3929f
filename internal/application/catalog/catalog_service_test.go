package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockChannelRepository mocks catalog.ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Channel), args.Error(1)
}

func (m *MockChannelRepository) FindActive(ctx context.Context) ([]catalog.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Channel), args.Error(1)
}

func (m *MockChannelRepository) FindCategories(ctx context.Context, channelID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockChannelRepository) Save(ctx context.Context, channel *catalog.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

// MockProductRepository mocks catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindOnlineByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindVariants(ctx context.Context, productID uuid.UUID) ([]catalog.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindAdditivesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Additive, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Additive), args.Error(1)
}

func (m *MockProductRepository) FindAdditivesForProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Additive, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Additive), args.Error(1)
}

func (m *MockProductRepository) FindImages(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func testChannel(t *testing.T, name string) *catalog.Channel {
	t.Helper()
	ch, err := catalog.NewChannel("CH-"+name, name, "Berlin")
	require.NoError(t, err)
	ch.Publish()
	return ch
}

func testCategory(t *testing.T, code, name string) catalog.Category {
	t.Helper()
	cat, err := catalog.NewCategory(code, name)
	require.NoError(t, err)
	return *cat
}

func TestCatalogService_ListChannels(t *testing.T) {
	channelRepo := new(MockChannelRepository)
	productRepo := new(MockProductRepository)
	svc := NewCatalogService(channelRepo, productRepo)

	ch := testChannel(t, "Downtown")
	channelRepo.On("FindActive", mock.Anything).Return([]catalog.Channel{*ch}, nil)

	channels, err := svc.ListChannels(context.Background())

	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, ch.ID, channels[0].ID)
	assert.Equal(t, "Downtown", channels[0].Name)
	channelRepo.AssertExpectations(t)
}

func TestCatalogService_ChannelMenu(t *testing.T) {
	t.Run("defaults to the first category", func(t *testing.T) {
		channelRepo := new(MockChannelRepository)
		productRepo := new(MockProductRepository)
		svc := NewCatalogService(channelRepo, productRepo)

		ch := testChannel(t, "Downtown")
		pizza := testCategory(t, "PIZZA", "Pizza")
		pasta := testCategory(t, "PASTA", "Pasta")

		product, err := catalog.NewProduct("PIZZA-01", "Margherita", pizza.ID)
		require.NoError(t, err)
		product.Publish()

		channelRepo.On("FindByID", mock.Anything, ch.ID).Return(ch, nil)
		channelRepo.On("FindCategories", mock.Anything, ch.ID).Return([]catalog.Category{pizza, pasta}, nil)
		productRepo.On("FindOnlineByCategory", mock.Anything, pizza.ID).Return([]catalog.Product{*product}, nil)

		menu, err := svc.ChannelMenu(context.Background(), ch.ID, nil)

		require.NoError(t, err)
		require.NotNil(t, menu.SelectedCategory)
		assert.Equal(t, pizza.ID, menu.SelectedCategory.ID)
		assert.Len(t, menu.Categories, 2)
		require.Len(t, menu.Products, 1)
		assert.Equal(t, "Margherita", menu.Products[0].Name)
	})

	t.Run("category not exposed on the channel is unknown", func(t *testing.T) {
		channelRepo := new(MockChannelRepository)
		productRepo := new(MockProductRepository)
		svc := NewCatalogService(channelRepo, productRepo)

		ch := testChannel(t, "Downtown")
		pizza := testCategory(t, "PIZZA", "Pizza")
		foreign := uuid.New()

		channelRepo.On("FindByID", mock.Anything, ch.ID).Return(ch, nil)
		channelRepo.On("FindCategories", mock.Anything, ch.ID).Return([]catalog.Category{pizza}, nil)

		menu, err := svc.ChannelMenu(context.Background(), ch.ID, &foreign)

		assert.Nil(t, menu)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		productRepo.AssertNotCalled(t, "FindOnlineByCategory")
	})

	t.Run("channel without categories yields an empty menu", func(t *testing.T) {
		channelRepo := new(MockChannelRepository)
		productRepo := new(MockProductRepository)
		svc := NewCatalogService(channelRepo, productRepo)

		ch := testChannel(t, "Kiosk")
		channelRepo.On("FindByID", mock.Anything, ch.ID).Return(ch, nil)
		channelRepo.On("FindCategories", mock.Anything, ch.ID).Return([]catalog.Category{}, nil)

		menu, err := svc.ChannelMenu(context.Background(), ch.ID, nil)

		require.NoError(t, err)
		assert.Nil(t, menu.SelectedCategory)
		assert.Empty(t, menu.Categories)
		assert.Empty(t, menu.Products)
	})

	t.Run("unknown channel propagates not found", func(t *testing.T) {
		channelRepo := new(MockChannelRepository)
		productRepo := new(MockProductRepository)
		svc := NewCatalogService(channelRepo, productRepo)

		id := uuid.New()
		channelRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		menu, err := svc.ChannelMenu(context.Background(), id, nil)

		assert.Nil(t, menu)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCatalogService_ProductDetail(t *testing.T) {
	channelRepo := new(MockChannelRepository)
	productRepo := new(MockProductRepository)
	svc := NewCatalogService(channelRepo, productRepo)

	category := testCategory(t, "PIZZA", "Pizza")
	product, err := catalog.NewProduct("PIZZA-01", "Margherita", category.ID)
	require.NoError(t, err)

	variant, err := catalog.NewProductVariant(product.ID, "PIZZA-01-L", "Large", decimal.NewFromFloat(9.50))
	require.NoError(t, err)

	cheese := catalog.Additive{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Extra Cheese",
		Price:      decimal.NewFromFloat(1.25),
	}

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindVariants", mock.Anything, product.ID).Return([]catalog.ProductVariant{*variant}, nil)
	productRepo.On("FindAdditivesForProduct", mock.Anything, product.ID).Return([]catalog.Additive{cheese}, nil)
	productRepo.On("FindImages", mock.Anything, product.ID).Return([]catalog.ProductImage{
		{BaseEntity: shared.NewBaseEntity(), ProductID: product.ID, URL: "https://cdn.example.com/margherita.jpg"},
	}, nil)

	detail, err := svc.ProductDetail(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, "PIZZA-01", detail.SKU)
	require.Len(t, detail.Variants, 1)
	assert.True(t, detail.Variants[0].Price.Equal(decimal.NewFromFloat(9.50)))
	require.Len(t, detail.Additives, 1)
	assert.Equal(t, "Extra Cheese", detail.Additives[0].Name)
	require.Len(t, detail.Images, 1)
	assert.Equal(t, "https://cdn.example.com/margherita.jpg", detail.Images[0])
}
