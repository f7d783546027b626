package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// fakeViewCache is an in-memory ViewCache for tests
type fakeViewCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{entries: make(map[string][]byte)}
}

func (c *fakeViewCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeViewCache) Set(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeViewCache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// fakeInstanceViewRepo is an in-memory view repository for tests
type fakeInstanceViewRepo struct {
	mu    sync.Mutex
	views map[uuid.UUID]saga.InstanceView
	reads int
}

func newFakeInstanceViewRepo() *fakeInstanceViewRepo {
	return &fakeInstanceViewRepo{views: make(map[uuid.UUID]saga.InstanceView)}
}

func (r *fakeInstanceViewRepo) FindByID(ctx context.Context, id uuid.UUID) (*saga.InstanceView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if v, ok := r.views[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *fakeInstanceViewRepo) FindByCriteria(ctx context.Context, criteria shared.Criteria) (shared.Paginated[saga.InstanceView], error) {
	return shared.Paginated[saga.InstanceView]{}, nil
}

func (r *fakeInstanceViewRepo) Save(ctx context.Context, view *saga.InstanceView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.ID] = *view
	return nil
}

func (r *fakeInstanceViewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
	return nil
}

func instanceViewID(v *saga.InstanceView) uuid.UUID { return v.ID }

func newCachedRepo() (*CachedViewRepository[saga.InstanceView], *fakeInstanceViewRepo, *fakeViewCache) {
	inner := newFakeInstanceViewRepo()
	viewCache := newFakeViewCache()
	repo := NewCachedViewRepository[saga.InstanceView](inner, viewCache, "saga_instance", instanceViewID, zap.NewNop())
	return repo, inner, viewCache
}

func TestCachedViewRepository_FindByID(t *testing.T) {
	t.Run("backfills cache on miss and serves second read from cache", func(t *testing.T) {
		repo, inner, _ := newCachedRepo()

		view := &saga.InstanceView{ID: uuid.New(), TenantID: uuid.New(), Name: "Order Processing Saga", Status: saga.StatusPending}
		require.NoError(t, inner.Save(context.Background(), view))

		first, err := repo.FindByID(context.Background(), view.ID)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := repo.FindByID(context.Background(), view.ID)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, view.Name, second.Name)

		// Only the first read reaches the store.
		assert.Equal(t, 1, inner.reads)
	})

	t.Run("missing view is not cached", func(t *testing.T) {
		repo, inner, _ := newCachedRepo()

		view, err := repo.FindByID(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, view)
		assert.Equal(t, 1, inner.reads)
	})

	t.Run("cache failure falls through to the store", func(t *testing.T) {
		repo, inner, viewCache := newCachedRepo()
		viewCache.getErr = errors.New("redis down")

		view := &saga.InstanceView{ID: uuid.New(), Name: "Order Processing Saga"}
		require.NoError(t, inner.Save(context.Background(), view))

		got, err := repo.FindByID(context.Background(), view.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, view.ID, got.ID)
	})
}

func TestCachedViewRepository_SaveInvalidates(t *testing.T) {
	repo, _, viewCache := newCachedRepo()

	view := &saga.InstanceView{ID: uuid.New(), Name: "Order Processing Saga", Status: saga.StatusPending}
	require.NoError(t, repo.Save(context.Background(), view))

	// Warm the cache, then update through the decorator.
	_, err := repo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, viewCache.entries)

	view.Status = saga.StatusRunning
	require.NoError(t, repo.Save(context.Background(), view))
	assert.Empty(t, viewCache.entries)

	got, err := repo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saga.StatusRunning, got.Status)
}

func TestCachedViewRepository_DeleteInvalidates(t *testing.T) {
	repo, _, viewCache := newCachedRepo()

	view := &saga.InstanceView{ID: uuid.New(), Name: "Order Processing Saga"}
	require.NoError(t, repo.Save(context.Background(), view))
	_, err := repo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), view.ID))
	assert.Empty(t, viewCache.entries)

	got, err := repo.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
