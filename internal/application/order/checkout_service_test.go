package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChannelRepository is a mock implementation of catalog.ChannelRepository
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
	return args.Get(0).([]catalog.Channel), args.Error(1)
}

func (m *MockChannelRepository) FindCategories(ctx context.Context, channelID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockChannelRepository) Save(ctx context.Context, channel *catalog.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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
	return args.Get(0).([]catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindAdditivesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Additive, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Additive), args.Error(1)
}

func (m *MockProductRepository) FindAdditivesForProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Additive, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.Additive), args.Error(1)
}

func (m *MockProductRepository) FindImages(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIdentity(ctx context.Context, identity string) ([]order.Order, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// fakeCartStore is an in-process cart.Store for checkout tests.
type fakeCartStore struct {
	carts map[string]*cart.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*cart.Cart)}
}

func (f *fakeCartStore) Get(ctx context.Context, identity string) (*cart.Cart, error) {
	if c, ok := f.carts[identity]; ok {
		return c, nil
	}
	return cart.New(identity), nil
}

func (f *fakeCartStore) Update(ctx context.Context, identity string, mutate func(*cart.Cart) error) (*cart.Cart, error) {
	c, _ := f.Get(ctx, identity)
	if err := mutate(c); err != nil {
		if errors.Is(err, cart.ErrNoChange) {
			return c, nil
		}
		return nil, err
	}
	f.carts[identity] = c
	return c, nil
}

func (f *fakeCartStore) Touch(ctx context.Context, identity string) error { return nil }

func (f *fakeCartStore) Clear(ctx context.Context, identity string) error {
	delete(f.carts, identity)
	return nil
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	channel, err := catalog.NewChannel("MAIN", "Main Street", "Berlin")
	require.NoError(t, err)

	product, err := catalog.NewProduct("PIZZA-01", "Margherita", uuid.New())
	require.NoError(t, err)

	seedCart := func(t *testing.T, store *fakeCartStore, identity string) {
		t.Helper()
		_, err := store.Update(ctx, identity, func(c *cart.Cart) error {
			return c.Add(cart.LineItem{
				ProductID:     product.ID,
				Name:          product.Name,
				Variant:       cart.VariantRef{ID: uuid.New(), Name: "Large"},
				Quantity:      2,
				UnitPrice:     decimal.RequireFromString("10.00"),
				AdditiveTotal: decimal.RequireFromString("1.50"),
			})
		})
		require.NoError(t, err)
	}

	req := CheckoutRequest{
		ChannelID: channel.ID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Type:      order.OrderTypeOnline,
	}

	t.Run("places an order and clears the cart", func(t *testing.T) {
		store := newFakeCartStore()
		channelRepo := new(MockChannelRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		svc := NewCheckoutService(store, channelRepo, productRepo, orderRepo)

		seedCart(t, store, "session-1")
		channelRepo.On("FindByID", ctx, channel.ID).Return(channel, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := svc.Checkout(ctx, "session-1", req)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPendingPayment, resp.Status)
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("21.50")),
			"expected 21.50, got %s", resp.TotalAmount)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "PIZZA-01", resp.Items[0].SKU)
		assert.Equal(t, 2, resp.Items[0].Qty)

		remaining, err := store.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.True(t, remaining.IsEmpty(), "cart must be cleared after checkout")
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		svc := NewCheckoutService(newFakeCartStore(), new(MockChannelRepository), new(MockProductRepository), new(MockOrderRepository))

		_, err := svc.Checkout(ctx, "empty-session", req)

		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("propagates unknown channel", func(t *testing.T) {
		store := newFakeCartStore()
		channelRepo := new(MockChannelRepository)
		svc := NewCheckoutService(store, channelRepo, new(MockProductRepository), new(MockOrderRepository))

		seedCart(t, store, "session-1")
		channelRepo.On("FindByID", ctx, channel.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.Checkout(ctx, "session-1", req)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
