package cart

import "github.com/storefront/backend/internal/domain/shared"

// Validation errors raised at the add-line boundary. All of them surface as a
// 400-class response and are never retried.
var (
	ErrMissingVariant  = shared.NewDomainError("INVALID_LINE_ITEM", "Variant ID is required")
	ErrMissingProduct  = shared.NewDomainError("INVALID_LINE_ITEM", "Product ID is required")
	ErrInvalidQuantity = shared.NewDomainError("INVALID_LINE_ITEM", "Quantity must be at least 1")
	ErrNegativePrice   = shared.NewDomainError("INVALID_LINE_ITEM", "Prices cannot be negative")
)
