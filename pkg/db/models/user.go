package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/saikambala25/goat/pkg/db/types"
	"github.com/saikambala25/goat/pkg/types"
)

// User is the identity record. The saved shopping state lives on the same
// row as a denormalized sub-document.
type User struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Email        string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Cart         CartEntries       `gorm:"column:cart;type:jsonb;serializer:json"`
	Wishlist     dbtypes.UUIDArray `gorm:"column:wishlist"`
	Addresses    []types.Address   `gorm:"column:addresses;type:jsonb;serializer:json"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// CartEntry references a catalog listing. Dangling references are tolerated.
type CartEntry struct {
	LivestockID uuid.UUID `json:"livestockId"`
	Selected    bool      `json:"selected"`
}

type CartEntries []CartEntry

// IDs returns the referenced listing ids in cart order.
func (c CartEntries) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(c))
	for _, entry := range c {
		out = append(out, entry.LivestockID)
	}
	return out
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Cart == nil {
		u.Cart = CartEntries{}
	}
	if u.Wishlist == nil {
		u.Wishlist = dbtypes.UUIDArray{}
	}
	if u.Addresses == nil {
		u.Addresses = []types.Address{}
	}
	return nil
}
