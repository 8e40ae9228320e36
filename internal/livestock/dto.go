package livestock

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/enums"
	"github.com/saikambala25/goat/pkg/types"
	"github.com/saikambala25/goat/pkg/validation"
)

// LivestockDTO is the public shape of a catalog listing.
type LivestockDTO struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Type      enums.LivestockType `json:"type"`
	Breed     string              `json:"breed"`
	Age       int                 `json:"age"`
	Price     decimal.Decimal     `json:"price"`
	Image     string              `json:"image"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func FromModel(m *models.Livestock) *LivestockDTO {
	if m == nil {
		return nil
	}
	return &LivestockDTO{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		Breed:     m.Breed,
		Age:       m.Age,
		Price:     m.Price,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromModels(items []models.Livestock) []LivestockDTO {
	out := make([]LivestockDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}

// CreateLivestockRequest is the payload for adding a listing. Pointer fields
// distinguish "absent" from zero so required and default rules can apply.
type CreateLivestockRequest struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Breed string   `json:"breed"`
	Age   *int     `json:"age"`
	Price *float64 `json:"price"`
	Image string   `json:"image"`
}

func (r CreateLivestockRequest) Validate() error {
	var res validation.Result
	res.Required("name", r.Name)
	if strings.TrimSpace(r.Type) != "" {
		if _, err := enums.ParseLivestockType(r.Type); err != nil {
			res.Add("type", validation.ReasonInvalidValue, "type must be one of Goat, Sheep, Buffalo, Cow, Other")
		}
	}
	if r.Age != nil && *r.Age < 0 {
		res.Add("age", validation.ReasonNegative, "age must not be negative")
	}
	if r.Price == nil {
		res.Add("price", validation.ReasonRequired, "price is required")
	} else {
		res.NonNegative("price", *r.Price)
	}
	return res.Err()
}

// ToModel assumes Validate passed.
func (r CreateLivestockRequest) ToModel() *models.Livestock {
	kind := enums.DefaultLivestockType
	if parsed, err := enums.ParseLivestockType(r.Type); err == nil {
		kind = parsed
	}
	item := &models.Livestock{
		Name:  strings.TrimSpace(r.Name),
		Type:  kind,
		Breed: strings.TrimSpace(r.Breed),
		Image: strings.TrimSpace(r.Image),
	}
	if r.Age != nil {
		item.Age = *r.Age
	}
	if r.Price != nil {
		item.Price = types.MoneyFromFloat(*r.Price)
	}
	return item
}
