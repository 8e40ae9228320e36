package userstate

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikambala25/goat/internal/livestock"
	"github.com/saikambala25/goat/internal/orders"
	"github.com/saikambala25/goat/pkg/enums"
	"github.com/saikambala25/goat/pkg/types"
)

// ItemSummary is the display view of a referenced listing. A listing that no
// longer exists renders with zero values and Available=false.
type ItemSummary struct {
	Name      string              `json:"name"`
	Type      enums.LivestockType `json:"type"`
	Breed     string              `json:"breed"`
	Price     decimal.Decimal     `json:"price"`
	Image     string              `json:"image"`
	Available bool                `json:"available"`
}

func summarize(item livestock.LivestockDTO, ok bool) ItemSummary {
	if !ok {
		return ItemSummary{Price: decimal.Zero}
	}
	return ItemSummary{
		Name:      item.Name,
		Type:      item.Type,
		Breed:     item.Breed,
		Price:     item.Price,
		Image:     item.Image,
		Available: true,
	}
}

type CartItemView struct {
	LivestockID uuid.UUID   `json:"livestockId"`
	Selected    bool        `json:"selected"`
	Item        ItemSummary `json:"item"`
}

type WishlistItemView struct {
	LivestockID uuid.UUID   `json:"livestockId"`
	Item        ItemSummary `json:"item"`
}

// StateDTO is the saved shopping state returned by GET and PUT.
type StateDTO struct {
	Cart      []CartItemView     `json:"cart"`
	Wishlist  []WishlistItemView `json:"wishlist"`
	Addresses []types.Address    `json:"addresses"`
	Orders    []orders.OrderDTO  `json:"orders"`
}
