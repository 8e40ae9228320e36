package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/db/models"
	"github.com/saikambala25/goat/pkg/enums"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
	"github.com/saikambala25/goat/pkg/types"
)

// Service exposes order placement, listing and lifecycle operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error)
}

// ServiceParams bundles the order service dependencies.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logger, now: now}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	items, err := req.items()
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.now().Format(DateLayout)
	}

	order, err := s.repo.Create(ctx, &models.Order{
		UserID:  userID,
		Items:   items,
		Total:   types.MoneyFromFloat(*req.Total),
		Status:  enums.OrderStatusProcessing,
		Date:    date,
		Address: req.Address,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	logCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(s.logg.WithField(logCtx, "item_count", len(items)), "order.created")
	return FromModel(order), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return fromModels(orders), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error) {
	target, err := req.parse()
	if err != nil {
		return nil, err
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		return FromModel(order), nil
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, transitionConflict(order.Status, target)
	}

	updated, err := s.repo.UpdateStatusCAS(ctx, id, order.Status, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !updated && current.Status != target {
		// Another writer moved the order first.
		return nil, transitionConflict(current.Status, target)
	}

	if updated {
		logCtx := s.logg.WithOrderID(ctx, id.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{"from": order.Status, "to": target})
		s.logg.Info(logCtx, "order.status_changed")
	}
	return FromModel(current), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

func transitionConflict(from, to enums.OrderStatus) error {
	msg := fmt.Sprintf("cannot move order from %s to %s", from, to)
	if from.IsTerminal() {
		msg = fmt.Sprintf("order is already %s", from)
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, msg).
		WithDetails(map[string]string{"from": from.String(), "to": to.String()})
}
