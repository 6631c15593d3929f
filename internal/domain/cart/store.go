package cart

import (
	"context"
	"errors"
	"time"
)

// ErrNoChange is returned by an Update mutator to signal that the cart was
// left untouched; the store then skips the write and reports success. Used
// for the idempotent no-op cases (removing an absent key).
var ErrNoChange = errors.New("cart unchanged")

// TTL is the expiry window for an idle cart. Every access, read or write,
// resets it to the full window.
const TTL = 7 * 24 * time.Hour

// Store is the per-identity, TTL-bounded cart storage. Implementations must
// make Update atomic with respect to concurrent callers on the same identity:
// N concurrent merges of the same line key must leave the summed quantity,
// and no writer may observe or publish partial state.
type Store interface {
	// Get returns the cart for the identity, or an empty cart when none
	// exists yet. It refreshes the TTL of an existing cart.
	Get(ctx context.Context, identity string) (*Cart, error)

	// Update performs an atomic read-modify-write: it loads the current
	// cart (empty if absent), applies mutate, persists the result and
	// resets the TTL. A mutate error aborts without persisting.
	Update(ctx context.Context, identity string, mutate func(*Cart) error) (*Cart, error)

	// Touch refreshes the TTL without mutating. Touching an absent cart is
	// a no-op.
	Touch(ctx context.Context, identity string) error

	// Clear deletes the cart key outright so the next access starts from
	// empty. Clearing an absent cart is a no-op.
	Clear(ctx context.Context, identity string) error
}
