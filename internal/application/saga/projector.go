package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// InstanceProjector maintains the saga instance read model
type InstanceProjector struct {
	views  shared.ViewRepository[saga.InstanceView]
	logger *zap.Logger
}

// NewInstanceProjector creates a new saga instance projector
func NewInstanceProjector(views shared.ViewRepository[saga.InstanceView], logger *zap.Logger) *InstanceProjector {
	return &InstanceProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *InstanceProjector) EventTypes() []string {
	return []string{
		saga.EventTypeInstanceCreated,
		saga.EventTypeInstanceUpdated,
		saga.EventTypeInstanceDeleted,
	}
}

// Handle projects an instance lifecycle event into the read store
func (p *InstanceProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *saga.InstanceCreatedEvent:
		return p.views.Save(ctx, saga.NewInstanceView(e.Snapshot))
	case *saga.InstanceUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Saga instance view missing for update",
				zap.String("saga_instance_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *saga.InstanceDeletedEvent:
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

// StepProjector maintains the saga step read model
type StepProjector struct {
	views  shared.ViewRepository[saga.StepView]
	logger *zap.Logger
}

// NewStepProjector creates a new saga step projector
func NewStepProjector(views shared.ViewRepository[saga.StepView], logger *zap.Logger) *StepProjector {
	return &StepProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *StepProjector) EventTypes() []string {
	return []string{
		saga.EventTypeStepCreated,
		saga.EventTypeStepUpdated,
		saga.EventTypeStepDeleted,
	}
}

// Handle projects a step lifecycle event into the read store
func (p *StepProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *saga.StepCreatedEvent:
		return p.views.Save(ctx, saga.NewStepView(e.Snapshot))
	case *saga.StepUpdatedEvent:
		view, err := p.views.FindByID(ctx, e.AggregateID())
		if err != nil {
			return err
		}
		if view == nil {
			p.logger.Error("Saga step view missing for update",
				zap.String("saga_step_id", e.AggregateID().String()))
			return shared.ErrViewModelNotFound
		}
		view.ApplySnapshot(e.Snapshot)
		return p.views.Save(ctx, view)
	case *saga.StepDeletedEvent:
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

// LogViewProjector maintains the saga log read model. Logs are
// append-only, so only creation events exist.
type LogViewProjector struct {
	views  shared.ViewRepository[saga.LogView]
	logger *zap.Logger
}

// NewLogViewProjector creates a new saga log view projector
func NewLogViewProjector(views shared.ViewRepository[saga.LogView], logger *zap.Logger) *LogViewProjector {
	return &LogViewProjector{views: views, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *LogViewProjector) EventTypes() []string {
	return []string{saga.EventTypeLogCreated}
}

// Handle projects a log creation event into the read store
func (p *LogViewProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*saga.LogCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %q", event.EventType())
	}
	return p.views.Save(ctx, saga.NewLogView(e.Snapshot))
}

var (
	_ shared.EventHandler = (*InstanceProjector)(nil)
	_ shared.EventHandler = (*StepProjector)(nil)
	_ shared.EventHandler = (*LogViewProjector)(nil)
)
