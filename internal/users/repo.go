package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/internal/repo"
	"github.com/saikambala25/goat/pkg/db/models"
	dbtypes "github.com/saikambala25/goat/pkg/db/types"
	"github.com/saikambala25/goat/pkg/types"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email. Emails are
// stored lowercased, so the lookup key is normalized the same way.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	key := strings.ToLower(strings.TrimSpace(email))
	if err := r.DB(ctx).Where("email = ?", key).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// StatePatch carries the saved-state columns to overwrite. Nil fields are
// left untouched.
type StatePatch struct {
	Cart      *models.CartEntries
	Wishlist  *dbtypes.UUIDArray
	Addresses *[]types.Address
}

func (p StatePatch) Empty() bool {
	return p.Cart == nil && p.Wishlist == nil && p.Addresses == nil
}

// UpdateState writes only the columns present in patch. It reports
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) UpdateState(ctx context.Context, id uuid.UUID, patch StatePatch) error {
	if patch.Empty() {
		return nil
	}

	update := models.User{}
	columns := make([]string, 0, 3)
	if patch.Cart != nil {
		update.Cart = *patch.Cart
		columns = append(columns, "cart")
	}
	if patch.Wishlist != nil {
		update.Wishlist = *patch.Wishlist
		columns = append(columns, "wishlist")
	}
	if patch.Addresses != nil {
		update.Addresses = *patch.Addresses
		columns = append(columns, "addresses")
	}

	res := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Select(columns).
		Updates(&update)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
