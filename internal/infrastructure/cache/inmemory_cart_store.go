package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
)

// memEntry is one stored cart with its expiry.
type memEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// identityLock serializes mutations of one identity's cart. refs counts the
// goroutines holding or waiting on the lock; a lock may only be removed from
// the map while refs is zero, so no two goroutines can ever hold different
// locks for the same identity.
type identityLock struct {
	mu   sync.Mutex
	refs int
}

// InMemoryCartStore implements cart.Store with an in-process map. Suitable
// for single-instance deployments and testing; state is not shared across
// processes.
//
// Each identity has its own lock held for the whole read-modify-write span,
// so concurrent mutations of the same cart serialize instead of clobbering
// each other.
type InMemoryCartStore struct {
	mu        sync.Mutex
	entries   map[string]*memEntry
	locks     map[string]*identityLock
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a new in-memory cart store. It starts a
// background goroutine that evicts expired carts.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	if ttl <= 0 {
		ttl = cart.TTL
	}
	store := &InMemoryCartStore{
		entries:  make(map[string]*memEntry),
		locks:    make(map[string]*identityLock),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// acquire takes the lock guarding one identity's cart, registering the
// caller so the lock is not reclaimed while anyone holds or waits on it.
func (s *InMemoryCartStore) acquire(identity string) *identityLock {
	s.mu.Lock()
	l, ok := s.locks[identity]
	if !ok {
		l = &identityLock{}
		s.locks[identity] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks and drops the lock from the map once no goroutine needs it
// and no live cart remains for the identity.
func (s *InMemoryCartStore) release(identity string, l *identityLock) {
	l.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		if _, ok := s.entries[identity]; !ok {
			delete(s.locks, identity)
		}
	}
}

// load returns a deep copy of the stored cart, or an empty cart when absent
// or expired. Callers must hold the identity lock.
func (s *InMemoryCartStore) load(identity string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[identity]
	if !ok || time.Now().After(e.expiresAt) {
		return cart.New(identity)
	}
	return cloneCart(e.cart)
}

func (s *InMemoryCartStore) save(c *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[c.Identity] = &memEntry{
		cart:      cloneCart(c),
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns the cart for the identity, refreshing its TTL.
func (s *InMemoryCartStore) Get(ctx context.Context, identity string) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock := s.acquire(identity)
	defer s.release(identity, lock)

	c := s.load(identity)
	if !c.IsEmpty() {
		s.refresh(identity)
	}
	return c, nil
}

// Update performs the read-modify-write under the identity's lock.
func (s *InMemoryCartStore) Update(ctx context.Context, identity string, mutate func(*cart.Cart) error) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock := s.acquire(identity)
	defer s.release(identity, lock)

	c := s.load(identity)
	if err := mutate(c); err != nil {
		if errors.Is(err, cart.ErrNoChange) {
			return c, nil
		}
		return nil, err
	}
	s.save(c)
	return c, nil
}

// Touch refreshes the TTL of an existing cart. Absent carts are a no-op.
func (s *InMemoryCartStore) Touch(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock := s.acquire(identity)
	defer s.release(identity, lock)

	s.refresh(identity)
	return nil
}

// Clear deletes the cart outright. Idempotent.
func (s *InMemoryCartStore) Clear(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock := s.acquire(identity)
	defer s.release(identity, lock)

	s.mu.Lock()
	delete(s.entries, identity)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryCartStore) refresh(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[identity]; ok && time.Now().Before(e.expiresAt) {
		e.expiresAt = time.Now().Add(s.ttl)
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *InMemoryCartStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for identity, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, identity)
			// The lock goes with the cart unless a goroutine holds or
			// waits on it; release reclaims it in that case.
			if l, ok := s.locks[identity]; ok && l.refs == 0 {
				delete(s.locks, identity)
			}
		}
	}
}

func cloneCart(c *cart.Cart) *cart.Cart {
	clone := &cart.Cart{
		Identity: c.Identity,
		Items:    make([]cart.LineItem, len(c.Items)),
	}
	copy(clone.Items, c.Items)
	for i := range clone.Items {
		if len(c.Items[i].Additives) > 0 {
			clone.Items[i].Additives = make([]cart.AdditiveLine, len(c.Items[i].Additives))
			copy(clone.Items[i].Additives, c.Items[i].Additives)
		}
	}
	return clone
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
