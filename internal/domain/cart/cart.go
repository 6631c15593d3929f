package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantRef is the denormalized variant snapshot captured at add-time.
type VariantRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AdditiveLine is the denormalized additive snapshot captured at add-time.
type AdditiveLine struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// LineItem is one mergeable unit within a cart: a (variant, additive-set)
// combination with catalog data copied at add-time so later catalog edits
// never retroactively alter an in-progress cart.
type LineItem struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Variant       VariantRef      `json:"variant"`
	Additives     []AdditiveLine  `json:"additives,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	AdditiveTotal decimal.Decimal `json:"additive_total"`
}

// LineKey identifies the line for merging. Two adds of the same variant merge
// only when their additive sets match; the same variant with different
// additives stays a separate line.
func (li *LineItem) LineKey() string {
	if len(li.Additives) == 0 {
		return li.Variant.ID.String()
	}
	ids := make([]string, len(li.Additives))
	for i, a := range li.Additives {
		ids[i] = a.ID.String()
	}
	sort.Strings(ids)
	return li.Variant.ID.String() + ":" + strings.Join(ids, "+")
}

// TotalPrice is derived on read, never stored: unit price times quantity plus
// the additive total. Recomputing avoids drift across repeated merges.
func (li *LineItem) TotalPrice() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Add(li.AdditiveTotal)
}

// Validate checks the invariants every candidate line must satisfy before it
// may enter a cart.
func (li *LineItem) Validate() error {
	if li.Variant.ID == uuid.Nil {
		return ErrMissingVariant
	}
	if li.ProductID == uuid.Nil {
		return ErrMissingProduct
	}
	if li.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if li.UnitPrice.IsNegative() || li.AdditiveTotal.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Cart is the aggregate: one per identity, items ordered by insertion.
type Cart struct {
	Identity string     `json:"identity"`
	Items    []LineItem `json:"items"`
}

// New returns an empty cart for the given identity.
func New(identity string) *Cart {
	return &Cart{Identity: identity}
}

// Add merges the candidate into the cart. When a line with the same key
// already exists its quantity is incremented and the existing snapshot kept
// (first add wins on price and name); otherwise the candidate is appended.
func (c *Cart) Add(candidate LineItem) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	key := candidate.LineKey()
	for i := range c.Items {
		if c.Items[i].LineKey() == key {
			c.Items[i].Quantity += candidate.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, candidate)
	return nil
}

// Remove deletes the line with the given key. Removing an absent key is a
// no-op; the boolean reports whether anything changed.
func (c *Cart) Remove(lineKey string) bool {
	for i := range c.Items {
		if c.Items[i].LineKey() == lineKey {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the line with the given key, or nil.
func (c *Cart) Find(lineKey string) *LineItem {
	for i := range c.Items {
		if c.Items[i].LineKey() == lineKey {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalPrice sums the derived totals of every line.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}
