package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/enums"
)

// Livestock is a catalog listing.
type Livestock struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name      string              `gorm:"column:name;not null"`
	Type      enums.LivestockType `gorm:"column:type;type:text;not null;default:Goat"`
	Breed     string              `gorm:"column:breed;not null;default:''"`
	Age       int                 `gorm:"column:age;not null;default:0"`
	Price     decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	Image     string              `gorm:"column:image;not null;default:''"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Livestock) TableName() string {
	return "livestock"
}

func (l *Livestock) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
