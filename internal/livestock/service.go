package livestock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/db/models"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/logger"
)

const listCacheView = "list"

// Service exposes catalog operations.
type Service interface {
	List(ctx context.Context) ([]LivestockDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*LivestockDTO, error)
	Create(ctx context.Context, req CreateLivestockRequest) (*LivestockDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]LivestockDTO, error)
}

type repository interface {
	List(ctx context.Context) ([]models.Livestock, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Livestock, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Livestock, error)
	Create(ctx context.Context, item *models.Livestock) (*models.Livestock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cache is the read-through store for the catalog list.
type Cache interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogKey(view string) string
}

type cacheRecorder interface {
	CacheLookup(result string)
}

// ServiceParams bundles the catalog dependencies. Cache and Metrics are optional.
type ServiceParams struct {
	Repo     repository
	Cache    Cache
	CacheTTL time.Duration
	Metrics  cacheRecorder
	Logger   *logger.Logger
}

type service struct {
	repo     repository
	cache    Cache
	cacheTTL time.Duration
	metrics  cacheRecorder
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("livestock repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     params.Repo,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context) ([]LivestockDTO, error) {
	if cached, ok := s.readCachedList(ctx); ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list livestock")
	}
	out := fromModels(items)
	s.writeCachedList(ctx, out)
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*LivestockDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "livestock not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load livestock")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, req CreateLivestockRequest) (*LivestockDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create livestock")
	}
	s.invalidateList(ctx)
	return FromModel(item), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "livestock not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete livestock")
	}
	s.invalidateList(ctx)
	return nil
}

func (s *service) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]LivestockDTO, error) {
	items, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load livestock batch")
	}
	out := make(map[uuid.UUID]LivestockDTO, len(items))
	for i := range items {
		out[items[i].ID] = *FromModel(&items[i])
	}
	return out, nil
}

func (s *service) readCachedList(ctx context.Context) ([]LivestockDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := s.cache.CatalogKey(listCacheView)
	raw, found, err := s.cache.Lookup(ctx, key)
	if err != nil {
		s.recordLookup("error")
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "catalog.cache.read_failed")
		return nil, false
	}
	if !found {
		s.recordLookup("miss")
		return nil, false
	}

	var out []LivestockDTO
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.recordLookup("error")
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "catalog.cache.decode_failed")
		return nil, false
	}
	s.recordLookup("hit")
	return out, true
}

func (s *service) writeCachedList(ctx context.Context, items []LivestockDTO) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	key := s.cache.CatalogKey(listCacheView)
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "catalog.cache.write_failed")
	}
}

func (s *service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key := s.cache.CatalogKey(listCacheView)
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "catalog.cache.invalidate_failed")
	}
}

func (s *service) recordLookup(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookup(result)
	}
}
