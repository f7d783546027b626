package cache

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/shared"
)

// CachedViewRepository decorates a ViewRepository with read-through
// caching of FindByID. Criteria queries always hit the read store;
// caching paginated result sets is not worth the invalidation cost.
//
// Cache failures are logged and ignored so a degraded Redis never
// takes the read path down.
type CachedViewRepository[V any] struct {
	inner  shared.ViewRepository[V]
	cache  ViewCache
	prefix string
	idOf   func(*V) uuid.UUID
	logger *zap.Logger
}

// NewCachedViewRepository wraps a view repository with a cache.
// The prefix namespaces keys per view type, e.g. "saga_instance";
// idOf extracts the view's primary key for cache invalidation.
func NewCachedViewRepository[V any](inner shared.ViewRepository[V], cache ViewCache, prefix string, idOf func(*V) uuid.UUID, logger *zap.Logger) *CachedViewRepository[V] {
	return &CachedViewRepository[V]{
		inner:  inner,
		cache:  cache,
		prefix: prefix,
		idOf:   idOf,
		logger: logger,
	}
}

// FindByID returns the cached view when present, otherwise reads the
// store and backfills the cache.
func (r *CachedViewRepository[V]) FindByID(ctx context.Context, id uuid.UUID) (*V, error) {
	key := r.key(id)

	var cached V
	hit, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	view, err := r.inner.FindByID(ctx, id)
	if err != nil || view == nil {
		return view, err
	}

	if err := r.cache.Set(ctx, key, view); err != nil {
		r.logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
	}
	return view, nil
}

// FindByCriteria delegates to the underlying repository
func (r *CachedViewRepository[V]) FindByCriteria(ctx context.Context, criteria shared.Criteria) (shared.Paginated[V], error) {
	return r.inner.FindByCriteria(ctx, criteria)
}

// Save writes the view and invalidates its cache entry
func (r *CachedViewRepository[V]) Save(ctx context.Context, view *V) error {
	if err := r.inner.Save(ctx, view); err != nil {
		return err
	}
	r.invalidate(ctx, r.idOf(view))
	return nil
}

// Delete removes the view and invalidates its cache entry
func (r *CachedViewRepository[V]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedViewRepository[V]) invalidate(ctx context.Context, id uuid.UUID) {
	key := r.key(id)
	if err := r.cache.Invalidate(ctx, key); err != nil {
		r.logger.Warn("view cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedViewRepository[V]) key(id uuid.UUID) string {
	return r.prefix + ":" + id.String()
}

var _ shared.ViewRepository[struct{}] = (*CachedViewRepository[struct{}])(nil)
