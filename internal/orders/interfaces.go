package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/enums"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateStatusCAS moves the order from one status to another and reports
	// false when the row was not in the expected status.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error)
}
