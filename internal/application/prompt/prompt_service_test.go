package prompt

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/event"
)

type fakePromptRepo struct {
	prompts map[uuid.UUID]*prompt.Prompt
}

func newFakePromptRepo() *fakePromptRepo {
	return &fakePromptRepo{prompts: make(map[uuid.UUID]*prompt.Prompt)}
}

func (r *fakePromptRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*prompt.Prompt, error) {
	p, ok := r.prompts[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePromptRepo) Save(_ context.Context, tenantID uuid.UUID, p *prompt.Prompt) error {
	if p.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	r.prompts[p.ID] = p
	return nil
}

func (r *fakePromptRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	p, ok := r.prompts[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.prompts, id)
	return nil
}

type fakePromptViewRepo struct {
	views map[uuid.UUID]*prompt.PromptView
}

func newFakePromptViewRepo() *fakePromptViewRepo {
	return &fakePromptViewRepo{views: make(map[uuid.UUID]*prompt.PromptView)}
}

func (r *fakePromptViewRepo) FindByID(_ context.Context, id uuid.UUID) (*prompt.PromptView, error) {
	return r.views[id], nil
}

func (r *fakePromptViewRepo) FindByCriteria(_ context.Context, criteria shared.Criteria) (shared.Paginated[prompt.PromptView], error) {
	items := make([]prompt.PromptView, 0, len(r.views))
	for _, v := range r.views {
		items = append(items, *v)
	}
	c := criteria.Normalize()
	return shared.NewPaginated(items, int64(len(items)), c.Page, c.PageSize), nil
}

func (r *fakePromptViewRepo) Save(_ context.Context, v *prompt.PromptView) error {
	r.views[v.ID] = v
	return nil
}

func (r *fakePromptViewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.views, id)
	return nil
}

func newPromptFixture() (*PromptService, *fakePromptViewRepo) {
	logger := zap.NewNop()
	repo := newFakePromptRepo()
	views := newFakePromptViewRepo()
	bus := event.NewInMemoryEventBus(logger)
	bus.Subscribe(NewPromptProjector(views, logger))
	return NewPromptService(repo, views, bus, logger), views
}

func TestPromptService(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("create defaults model params", func(t *testing.T) {
		svc, views := newPromptFixture()

		dto, err := svc.Create(ctx, tenantID, CreatePromptInput{Name: "Summarize", Template: "Summarize: {{input}}"})
		require.NoError(t, err)
		assert.Equal(t, "{}", dto.ModelParams)
		assert.False(t, dto.Published)
		require.NotNil(t, views.views[dto.ID])
	})

	t.Run("publish is one way", func(t *testing.T) {
		svc, views := newPromptFixture()

		dto, err := svc.Create(ctx, tenantID, CreatePromptInput{Name: "Summarize", Template: "x"})
		require.NoError(t, err)

		published, err := svc.Publish(ctx, tenantID, dto.ID)
		require.NoError(t, err)
		assert.True(t, published.Published)
		assert.True(t, views.views[dto.ID].Published)

		_, err = svc.Publish(ctx, tenantID, dto.ID)
		require.Error(t, err)
	})

	t.Run("update propagates to view", func(t *testing.T) {
		svc, views := newPromptFixture()

		dto, err := svc.Create(ctx, tenantID, CreatePromptInput{Name: "Summarize", Template: "x"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, tenantID, dto.ID, UpdatePromptInput{
			Name:        "Summarize v2",
			Template:    "y",
			ModelParams: `{"temperature":0.2}`,
		})
		require.NoError(t, err)
		assert.Equal(t, "Summarize v2", views.views[dto.ID].Name)
		assert.Equal(t, `{"temperature":0.2}`, views.views[dto.ID].ModelParams)
	})

	t.Run("cross tenant access is not found", func(t *testing.T) {
		svc, _ := newPromptFixture()

		dto, err := svc.Create(ctx, tenantID, CreatePromptInput{Name: "Summarize", Template: "x"})
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, uuid.New(), dto.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PROMPT_NOT_FOUND", domainErr.Code)
	})

	t.Run("delete removes view", func(t *testing.T) {
		svc, views := newPromptFixture()

		dto, err := svc.Create(ctx, tenantID, CreatePromptInput{Name: "Summarize", Template: "x"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, tenantID, dto.ID))
		assert.Nil(t, views.views[dto.ID])
	})
}
