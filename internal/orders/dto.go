package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/enums"
	"github.com/saikambala25/goat/pkg/types"
	"github.com/saikambala25/goat/pkg/validation"
)

// DateLayout renders the default order date as dd/mm/yyyy.
const DateLayout = "02/01/2006"

// OrderItemDTO is the snapshot of a listing captured at order time.
type OrderItemDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Breed string          `json:"breed"`
}

// OrderDTO is the public shape of an order.
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"userId"`
	Items     []OrderItemDTO    `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	Date      string            `json:"date"`
	Address   types.Address     `json:"address"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Breed: item.Breed,
		})
	}
	return &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total,
		Status:    o.Status,
		Date:      o.Date,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func fromModels(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out
}

// OrderItemInput is one line of a CreateOrderRequest.
type OrderItemInput struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Breed string   `json:"breed"`
}

// CreateOrderRequest is the checkout payload. The total is taken as sent.
type CreateOrderRequest struct {
	Items   []OrderItemInput `json:"items"`
	Total   *float64         `json:"total"`
	Address types.Address    `json:"address"`
	Date    string           `json:"date"`
}

func (r CreateOrderRequest) Validate() error {
	_, err := r.items()
	return err
}

// items validates the request and converts the lines into snapshots.
func (r CreateOrderRequest) items() ([]models.OrderItem, error) {
	var res validation.Result
	if len(r.Items) == 0 {
		res.Add("items", validation.ReasonEmpty, "items must not be empty")
	}

	out := make([]models.OrderItem, 0, len(r.Items))
	for i, in := range r.Items {
		var line validation.Result
		id, _ := line.UUID("id", in.ID)
		line.Required("name", in.Name)
		if in.Price == nil {
			line.Add("price", validation.ReasonRequired, "price is required")
		} else {
			line.NonNegative("price", *in.Price)
		}
		res.Nested(fmt.Sprintf("items[%d]", i), line)
		if line.OK() {
			out = append(out, models.OrderItem{
				ID:    id,
				Name:  strings.TrimSpace(in.Name),
				Price: types.MoneyFromFloat(*in.Price),
				Breed: strings.TrimSpace(in.Breed),
			})
		}
	}

	if r.Total == nil {
		res.Add("total", validation.ReasonRequired, "total is required")
	} else {
		res.NonNegative("total", *r.Total)
	}
	res.Nested("address", r.Address.Validate())

	if err := res.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusRequest is the payload for moving an order through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	_, err := r.parse()
	return err
}

func (r UpdateStatusRequest) parse() (enums.OrderStatus, error) {
	var res validation.Result
	if !res.Required("status", r.Status) {
		return "", res.Err()
	}
	status, err := enums.ParseOrderStatus(r.Status)
	if err != nil {
		res.Add("status", validation.ReasonInvalidValue, "status must be one of Processing, Shipped, Delivered, Cancelled")
		return "", res.Err()
	}
	return status, nil
}
