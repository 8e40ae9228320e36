package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/db/dbtest"
	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/enums"
)

func seedOrder(t *testing.T, repo Repository, userID uuid.UUID) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		UserID: userID,
		Items: []models.OrderItem{
			{ID: uuid.New(), Name: "Billy", Price: decimal.RequireFromString("12000.00"), Breed: "Boer"},
		},
		Total:   decimal.RequireFromString("12000.00"),
		Status:  enums.OrderStatusProcessing,
		Date:    "09/03/2026",
		Address: validAddress(),
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryRoundTripsJSONColumns(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	userID := uuid.New()
	created := seedOrder(t, repo, userID)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Billy", got.Items[0].Name)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, validAddress(), got.Address)
	assert.Equal(t, enums.OrderStatusProcessing, got.Status)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateStatusCAS(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	order := seedOrder(t, repo, uuid.New())
	ctx := context.Background()

	ok, err := repo.UpdateStatusCAS(ctx, order.ID, enums.OrderStatusProcessing, enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.True(t, ok)

	// The stored status no longer matches the expected one.
	ok, err = repo.UpdateStatusCAS(ctx, order.ID, enums.OrderStatusProcessing, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, got.Status)

	ok, err = repo.UpdateStatusCAS(ctx, uuid.New(), enums.OrderStatusProcessing, enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.False(t, ok)
}
