package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/billing"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/event"
)

type fakePlanRepo struct {
	plans map[uuid.UUID]*billing.SubscriptionPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*billing.SubscriptionPlan)}
}

func (r *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range r.plans {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePlanRepo) Save(_ context.Context, p *billing.SubscriptionPlan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakePlanViewRepo struct {
	views map[uuid.UUID]*billing.PlanView
}

func newFakePlanViewRepo() *fakePlanViewRepo {
	return &fakePlanViewRepo{views: make(map[uuid.UUID]*billing.PlanView)}
}

func (r *fakePlanViewRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.PlanView, error) {
	return r.views[id], nil
}

func (r *fakePlanViewRepo) FindByCriteria(_ context.Context, criteria shared.Criteria) (shared.Paginated[billing.PlanView], error) {
	items := make([]billing.PlanView, 0, len(r.views))
	for _, v := range r.views {
		items = append(items, *v)
	}
	c := criteria.Normalize()
	return shared.NewPaginated(items, int64(len(items)), c.Page, c.PageSize), nil
}

func (r *fakePlanViewRepo) Save(_ context.Context, v *billing.PlanView) error {
	r.views[v.ID] = v
	return nil
}

func (r *fakePlanViewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.views, id)
	return nil
}

func newPlanFixture() (*PlanService, *fakePlanRepo, *fakePlanViewRepo) {
	logger := zap.NewNop()
	repo := newFakePlanRepo()
	views := newFakePlanViewRepo()
	bus := event.NewInMemoryEventBus(logger)
	bus.Subscribe(NewPlanProjector(views, logger))
	return NewPlanService(repo, views, bus, logger), repo, views
}

func TestPlanService(t *testing.T) {
	ctx := context.Background()

	t.Run("create projects view with fixed-point price", func(t *testing.T) {
		svc, _, views := newPlanFixture()

		dto, err := svc.Create(ctx, CreatePlanInput{
			Name:       "Pro",
			Price:      "29.9",
			Currency:   "USD",
			Interval:   "monthly",
			MaxUsers:   10,
			MaxPrompts: 500,
		})
		require.NoError(t, err)
		assert.Equal(t, "29.90", dto.Price)
		assert.True(t, dto.Active)

		view := views.views[dto.ID]
		require.NotNil(t, view)
		assert.Equal(t, "Pro", view.Name)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		svc, _, _ := newPlanFixture()

		_, err := svc.Create(ctx, CreatePlanInput{Name: "Pro", Price: "29.90", Currency: "USD", Interval: "monthly"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreatePlanInput{Name: "Pro", Price: "9.90", Currency: "USD", Interval: "monthly"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PLAN_EXISTS", domainErr.Code)
	})

	t.Run("invalid price string", func(t *testing.T) {
		svc, _, _ := newPlanFixture()

		_, err := svc.Create(ctx, CreatePlanInput{Name: "Pro", Price: "abc", Currency: "USD", Interval: "monthly"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("update and retire propagate to view", func(t *testing.T) {
		svc, _, views := newPlanFixture()

		dto, err := svc.Create(ctx, CreatePlanInput{Name: "Pro", Price: "29.90", Currency: "USD", Interval: "monthly", MaxUsers: 5})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, dto.ID, UpdatePlanInput{Price: "39.90", MaxUsers: 20, MaxPrompts: 100})
		require.NoError(t, err)
		assert.Equal(t, "39.90", updated.Price)
		assert.Equal(t, 20, views.views[dto.ID].MaxUsers)

		retired, err := svc.Retire(ctx, dto.ID)
		require.NoError(t, err)
		assert.False(t, retired.Active)
		assert.False(t, views.views[dto.ID].Active)

		_, err = svc.Retire(ctx, dto.ID)
		require.Error(t, err)
	})

	t.Run("delete removes view", func(t *testing.T) {
		svc, repo, views := newPlanFixture()

		dto, err := svc.Create(ctx, CreatePlanInput{Name: "Pro", Price: "29.90", Currency: "USD", Interval: "monthly"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, dto.ID))
		assert.Empty(t, repo.plans)
		assert.Nil(t, views.views[dto.ID])
	})
}
