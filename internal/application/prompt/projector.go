package prompt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// PromptProjector maintains the prompt read model
type PromptProjector struct {
	views  shared.ViewRepository[prompt.PromptView]
	logger *zap.Logger
}

// NewPromptProjector creates a new prompt projector
func NewPromptProjector(views shared.ViewRepository[prompt.PromptView], logger *zap.Logger) *PromptProjector {
	return &PromptProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *PromptProjector) EventTypes() []string {
	return []string{
		prompt.EventTypePromptCreated,
		prompt.EventTypePromptUpdated,
		prompt.EventTypePromptDeleted,
	}
}

// Handle projects a prompt lifecycle event into the read store
func (p *PromptProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *prompt.PromptCreatedEvent:
		return p.views.Save(ctx, prompt.NewPromptView(e.Snapshot))
	case *prompt.PromptUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Prompt view missing for update",
				zap.String("prompt_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *prompt.PromptDeletedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			return shared.ErrViewModelNotFound
		}
		return p.views.Delete(ctx, e.AggregateID())
	default:
		return fmt.Errorf("unexpected event type %q", event.EventType())
	}
}

var _ shared.EventHandler = (*PromptProjector)(nil)
