package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/enums"
	"github.com/saikambala25/goat/pkg/types"
)

// Order is a purchase record. Only Status changes after creation.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Items     []OrderItem       `gorm:"column:items;type:jsonb;serializer:json;not null"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:Processing"`
	Date      string            `gorm:"column:date;not null"`
	Address   types.Address     `gorm:"column:address;type:jsonb;serializer:json;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots a listing at order time; it is not joined back to the catalog.
type OrderItem struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Breed string          `json:"breed"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
