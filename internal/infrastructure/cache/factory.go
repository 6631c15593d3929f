package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// CartStoreFactory creates cart stores based on configuration
type CartStoreFactory struct {
	redisConfig           config.RedisConfig
	cartConfig            config.CartConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(redisCfg config.RedisConfig, cartCfg config.CartConfig, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		redisConfig:           redisCfg,
		cartConfig:            cartCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed cart store
func (f *CartStoreFactory) CreateRedisStore() (cart.Store, error) {
	store, err := NewRedisCartStore(RedisCartStoreConfig{
		Addr:       f.redisConfig.Addr(),
		Password:   f.redisConfig.Password,
		DB:         f.redisConfig.DB,
		KeyPrefix:  f.cartConfig.KeyPrefix,
		TTL:        f.cartConfig.TTL,
		MaxRetries: f.cartConfig.CASMaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cart store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates an in-memory cart store.
// Suitable for single-instance deployments and testing.
// WARNING: in-memory carts are not shared across process instances, so
// customers bounced between replicas would see different carts.
func (f *CartStoreFactory) CreateInMemoryStore() cart.Store {
	return NewInMemoryCartStore(f.cartConfig.TTL)
}

// CreateStore creates a cart store based on whether Redis is available.
// It tries Redis first and falls back to in-memory when Redis is not
// reachable and AllowInMemoryFallback is true.
func (f *CartStoreFactory) CreateStore() (cart.Store, error) {
	if f.cartConfig.InMemory {
		f.logger.Info("using in-memory cart store (configured)")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis cart store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cart storage but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store. "+
		"Carts will not survive restarts or be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
