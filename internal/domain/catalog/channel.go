package catalog

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// ChannelStatus represents the publication status of a channel
type ChannelStatus string

const (
	ChannelStatusOnline  ChannelStatus = "online"
	ChannelStatusOffline ChannelStatus = "offline"
)

// Channel is a storefront, physical or online, exposing a subset of the
// catalog to customers.
type Channel struct {
	shared.BaseEntity
	Code     string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string        `gorm:"type:varchar(200);not null"`
	Status   ChannelStatus `gorm:"type:varchar(20);not null;index"`
	City     string        `gorm:"type:varchar(100)"`
	Address  string        `gorm:"type:text"`
	Phone    string        `gorm:"type:varchar(20)"`
	Currency string        `gorm:"type:varchar(3);not null;default:'EUR'"`
	Active   bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Channel) TableName() string {
	return "channels"
}

// NewChannel creates a new channel
func NewChannel(code, name, city string) (*Channel, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel name cannot be empty")
	}
	return &Channel{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
		Status:     ChannelStatusOffline,
		City:       city,
		Currency:   "EUR",
		Active:     true,
	}, nil
}

// Publish puts the channel online.
func (ch *Channel) Publish() {
	ch.Status = ChannelStatusOnline
}

// Unpublish takes the channel offline without deactivating it.
func (ch *Channel) Unpublish() {
	ch.Status = ChannelStatusOffline
}
