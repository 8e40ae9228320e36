package userstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/internal/livestock"
	"github.com/saikambala25/goat/internal/orders"
	"github.com/saikambala25/goat/internal/users"
	"github.com/saikambala25/goat/pkg/db/models"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
	"github.com/saikambala25/goat/pkg/types"
)

// Service reads and replaces a user's saved shopping state.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*StateDTO, error)
	Set(ctx context.Context, userID uuid.UUID, update StateUpdate) (*StateDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateState(ctx context.Context, id uuid.UUID, patch users.StatePatch) error
}

type catalogLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]livestock.LivestockDTO, error)
}

type orderLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]orders.OrderDTO, error)
}

// ServiceParams bundles the saved-state dependencies.
type ServiceParams struct {
	Users   userRepository
	Catalog catalogLookup
	Orders  orderLister
	Logger  *logger.Logger
}

type service struct {
	users   userRepository
	catalog catalogLookup
	orders  orderLister
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:   params.Users,
		catalog: params.Catalog,
		orders:  params.Orders,
		logg:    params.Logger,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*StateDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	ids := append(user.Cart.IDs(), user.Wishlist...)
	items, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	placed, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := &StateDTO{
		Cart:      make([]CartItemView, 0, len(user.Cart)),
		Wishlist:  make([]WishlistItemView, 0, len(user.Wishlist)),
		Addresses: user.Addresses,
		Orders:    placed,
	}
	for _, entry := range user.Cart {
		item, ok := items[entry.LivestockID]
		state.Cart = append(state.Cart, CartItemView{
			LivestockID: entry.LivestockID,
			Selected:    entry.Selected,
			Item:        summarize(item, ok),
		})
	}
	for _, id := range user.Wishlist {
		item, ok := items[id]
		state.Wishlist = append(state.Wishlist, WishlistItemView{LivestockID: id, Item: summarize(item, ok)})
	}
	if state.Addresses == nil {
		state.Addresses = []types.Address{}
	}
	if state.Orders == nil {
		state.Orders = []orders.OrderDTO{}
	}
	return state, nil
}

// Set validates the whole update before writing anything, then persists the
// supplied keys and returns the refreshed state.
func (s *service) Set(ctx context.Context, userID uuid.UUID, update StateUpdate) (*StateDTO, error) {
	patch, err := update.patch()
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateState(ctx, userID, patch); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save state")
	}

	if !patch.Empty() {
		logCtx := s.logg.WithUserID(ctx, userID.String())
		s.logg.Info(s.logg.WithFields(logCtx, map[string]any{
			"cart_set":      patch.Cart != nil,
			"wishlist_set":  patch.Wishlist != nil,
			"addresses_set": patch.Addresses != nil,
		}), "user_state.saved")
	}
	return s.Get(ctx, userID)
}
