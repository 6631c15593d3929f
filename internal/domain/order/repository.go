package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its items and addresses
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIdentity finds all orders placed by a customer identity
	FindByIdentity(ctx context.Context, identity string) ([]Order, error)

	// Save creates or updates an order with its item and address rows
	Save(ctx context.Context, o *Order) error
}
