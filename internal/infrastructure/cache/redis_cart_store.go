package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// RedisCartStore implements cart.Store on Redis. Carts are stored as one
// JSON document per identity under <prefix><identity> with a TTL that every
// access refreshes.
//
// Mutations use WATCH/MULTI/EXEC optimistic concurrency: the whole-document
// read-modify-write is retried when another writer touches the key between
// read and write, so concurrent adds against the same identity never lose an
// update.
type RedisCartStore struct {
	client     *redis.Client
	keyPrefix  string
	ttl        time.Duration
	maxRetries int
}

// RedisCartStoreConfig holds Redis cart store settings
type RedisCartStoreConfig struct {
	Addr       string
	Password   string
	DB         int
	KeyPrefix  string
	TTL        time.Duration
	MaxRetries int
}

// NewRedisCartStore creates a cart store with its own Redis client and
// verifies connectivity.
func NewRedisCartStore(cfg RedisCartStoreConfig) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, cfg), nil
}

// NewRedisCartStoreWithClient creates a cart store on an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, cfg RedisCartStoreConfig) *RedisCartStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "cart:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = cart.TTL
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 5
	}
	return &RedisCartStore{
		client:     client,
		keyPrefix:  cfg.KeyPrefix,
		ttl:        cfg.TTL,
		maxRetries: cfg.MaxRetries,
	}
}

func (s *RedisCartStore) key(identity string) string {
	return s.keyPrefix + identity
}

// Get returns the cart for the identity, refreshing its TTL. A missing key
// yields an empty cart.
func (s *RedisCartStore) Get(ctx context.Context, identity string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.key(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(identity), nil
	}
	if err != nil {
		return nil, unavailable("get", err)
	}

	c, err := decodeCart(identity, data)
	if err != nil {
		return nil, err
	}

	if err := s.client.Expire(ctx, s.key(identity), s.ttl).Err(); err != nil {
		return nil, unavailable("expire", err)
	}
	return c, nil
}

// Update performs the atomic read-modify-write. WATCH guards the key for the
// span of the transaction; a concurrent write aborts EXEC and the whole
// round is retried with fresh state, up to the configured bound.
func (s *RedisCartStore) Update(ctx context.Context, identity string, mutate func(*cart.Cart) error) (*cart.Cart, error) {
	key := s.key(identity)

	var result *cart.Cart
	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		var c *cart.Cart
		switch {
		case errors.Is(err, redis.Nil):
			c = cart.New(identity)
		case err != nil:
			return unavailable("get", err)
		default:
			if c, err = decodeCart(identity, data); err != nil {
				return err
			}
		}

		if err := mutate(c); err != nil {
			if errors.Is(err, cart.ErrNoChange) {
				result = c
				return nil
			}
			return err
		}

		encoded, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = c
		return nil
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, redis.TxFailedErr):
			continue // another writer got there first, re-read and retry
		case isDomainError(err):
			return nil, err
		default:
			return nil, unavailable("update", err)
		}
	}

	return nil, fmt.Errorf("cart update for %q: %w", identity, shared.ErrConcurrencyConflict)
}

// Touch refreshes the TTL without mutating. A missing key is a no-op.
func (s *RedisCartStore) Touch(ctx context.Context, identity string) error {
	if err := s.client.Expire(ctx, s.key(identity), s.ttl).Err(); err != nil {
		return unavailable("expire", err)
	}
	return nil
}

// Clear deletes the cart key outright. Idempotent.
func (s *RedisCartStore) Clear(ctx context.Context, identity string) error {
	if err := s.client.Del(ctx, s.key(identity)).Err(); err != nil {
		return unavailable("del", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

func decodeCart(identity string, data []byte) (*cart.Cart, error) {
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart for %q: %w", identity, err)
	}
	c.Identity = identity
	return &c, nil
}

// unavailable classifies a failed store round trip so the request-handling
// layer can retry it with backoff.
func unavailable(op string, err error) error {
	return fmt.Errorf("cart store %s: %w", op, errors.Join(shared.ErrStoreUnavailable, err))
}

func isDomainError(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr)
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
