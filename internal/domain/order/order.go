package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderType distinguishes storefront orders from online ones
type OrderType string

const (
	OrderTypeOnline  OrderType = "online"
	OrderTypeOffline OrderType = "offline"
)

// OrderStatus is the fulfillment lifecycle state of an order
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusProcessing     OrderStatus = "processing"
	StatusComplete       OrderStatus = "complete"
	StatusClosed         OrderStatus = "closed"
	StatusDelivered      OrderStatus = "delivered"
	StatusCanceled       OrderStatus = "canceled"
	StatusNotDelivered   OrderStatus = "not_delivered"
)

// AddressType distinguishes billing from shipping addresses
type AddressType string

const (
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
)

// Order is the aggregate root for a placed order. Item rows carry the cart's
// denormalized snapshot so the order stays stable when the catalog changes.
type Order struct {
	shared.BaseEntity
	ChannelID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Identity    string          `gorm:"type:varchar(100);not null;index"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName   string          `gorm:"type:varchar(255);not null"`
	LastName    string          `gorm:"type:varchar(255);not null"`
	Email       string          `gorm:"type:varchar(255);not null"`
	Status      OrderStatus     `gorm:"type:varchar(30);not null;index"`
	Type        OrderType       `gorm:"type:varchar(20);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items       []Item          `gorm:"foreignKey:OrderID"`
	Addresses   []Address       `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the pending-payment state
func NewOrder(channelID uuid.UUID, identity, code, firstName, lastName, email string, orderType OrderType) (*Order, error) {
	if channelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order must reference a channel")
	}
	if strings.TrimSpace(identity) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order must reference a customer identity")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order email is required")
	}
	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		ChannelID:   channelID,
		Identity:    identity,
		Code:        code,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Status:      StatusPendingPayment,
		Type:        orderType,
		TotalAmount: decimal.Zero,
	}, nil
}

// AddItem appends an item snapshot and accumulates the order total.
func (o *Order) AddItem(item Item, lineTotal decimal.Decimal) {
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	o.TotalAmount = o.TotalAmount.Add(lineTotal)
}

// Item is one ordered SKU with its quantity.
type Item struct {
	shared.BaseEntity
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	SKU       string         `gorm:"type:varchar(100);not null"`
	Qty       int            `gorm:"not null"`
	Variant   *ItemVariant   `gorm:"foreignKey:OrderItemID"`
	Additives []ItemAdditive `gorm:"foreignKey:OrderItemID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// ItemVariant is the variant snapshot of an ordered item.
type ItemVariant struct {
	shared.BaseEntity
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code        string          `gorm:"type:varchar(100);not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (ItemVariant) TableName() string {
	return "order_item_variants"
}

// ItemAdditive is one additive snapshot of an ordered item.
type ItemAdditive struct {
	shared.BaseEntity
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (ItemAdditive) TableName() string {
	return "order_item_additives"
}

// Address is a billing or shipping address attached to an order.
type Address struct {
	shared.BaseEntity
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type      AddressType `gorm:"type:varchar(20);not null"`
	FirstName string      `gorm:"type:varchar(255)"`
	LastName  string      `gorm:"type:varchar(255)"`
	Street    string      `gorm:"type:varchar(255)"`
	City      string      `gorm:"type:varchar(255)"`
	Country   string      `gorm:"type:varchar(255)"`
	Postcode  string      `gorm:"type:varchar(20)"`
	Phone     string      `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "order_addresses"
}
