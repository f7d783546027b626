package billing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/billing"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// PlanProjector maintains the subscription plan read model
type PlanProjector struct {
	views  shared.ViewRepository[billing.PlanView]
	logger *zap.Logger
}

// NewPlanProjector creates a new plan projector
func NewPlanProjector(views shared.ViewRepository[billing.PlanView], logger *zap.Logger) *PlanProjector {
	return &PlanProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *PlanProjector) EventTypes() []string {
	return []string{
		billing.EventTypePlanCreated,
		billing.EventTypePlanUpdated,
		billing.EventTypePlanDeleted,
	}
}

// Handle projects a plan lifecycle event into the read store
func (p *PlanProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *billing.PlanCreatedEvent:
		return p.views.Save(ctx, billing.NewPlanView(e.Snapshot))
	case *billing.PlanUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Plan view missing for update",
				zap.String("plan_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *billing.PlanDeletedEvent:
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

var _ shared.EventHandler = (*PlanProjector)(nil)
