package livestock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/internal/repo"
	"github.com/saikambala25/goat/pkg/db/models"
)

// Repository persists catalog listings.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every listing, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Livestock, error) {
	var items []models.Livestock
	if err := r.DB(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Livestock, error) {
	var item models.Livestock
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the listings that still exist among ids in one query.
// Missing ids are simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Livestock, error) {
	if len(ids) == 0 {
		return []models.Livestock{}, nil
	}
	var items []models.Livestock
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, item *models.Livestock) (*models.Livestock, error) {
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the listing and reports gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Livestock{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
