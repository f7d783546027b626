package saga

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// LogProjector synthesizes the saga audit trail.
//
// Unlike view projectors it never updates existing state: every
// instance and step lifecycle event produces one brand-new log entry,
// created via SagaLogCreateCommand on the command bus so the entry
// itself runs through the full command pipeline. Instance-level
// entries carry the instance ID in both the instance and step slots.
type LogProjector struct {
	commandBus shared.CommandBus
	logger     *zap.Logger
}

// NewLogProjector creates a new saga log projector
func NewLogProjector(commandBus shared.CommandBus, logger *zap.Logger) *LogProjector {
	return &LogProjector{commandBus: commandBus, logger: logger}
}

// EventTypes returns the event types this projector handles
func (p *LogProjector) EventTypes() []string {
	return []string{
		saga.EventTypeInstanceCreated,
		saga.EventTypeInstanceUpdated,
		saga.EventTypeInstanceDeleted,
		saga.EventTypeStepCreated,
		saga.EventTypeStepUpdated,
		saga.EventTypeStepDeleted,
	}
}

// Handle turns one lifecycle event into one saga log entry
func (p *LogProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	var cmd SagaLogCreateCommand

	switch e := event.(type) {
	case *saga.InstanceCreatedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.AggregateID(),
			LogType:        saga.LogTypeInfo,
			Message:        fmt.Sprintf("Saga instance %q created with status %q", e.Snapshot.Name, e.Snapshot.Status),
		}
	case *saga.InstanceUpdatedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.AggregateID(),
			LogType:        instanceUpdateLogType(e.Snapshot.Status),
			Message:        "Saga instance updated. Changed fields: " + strings.Join(e.ChangedFields, ", "),
		}
	case *saga.InstanceDeletedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.AggregateID(),
			LogType:        saga.LogTypeInfo,
			Message:        fmt.Sprintf("Saga instance %q deleted", e.Snapshot.Name),
		}
	case *saga.StepCreatedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.Snapshot.SagaInstanceID,
			SagaStepID:     e.AggregateID(),
			LogType:        saga.LogTypeInfo,
			Message:        fmt.Sprintf("Saga step %q created with status %q", e.Snapshot.Name, e.Snapshot.Status),
		}
	case *saga.StepUpdatedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.Snapshot.SagaInstanceID,
			SagaStepID:     e.AggregateID(),
			LogType:        stepUpdateLogType(e.Snapshot.Status),
			Message:        "Saga step updated. Changed fields: " + strings.Join(e.ChangedFields, ", "),
		}
	case *saga.StepDeletedEvent:
		cmd = SagaLogCreateCommand{
			TenantID:       e.TenantID(),
			SagaInstanceID: e.Snapshot.SagaInstanceID,
			SagaStepID:     e.AggregateID(),
			LogType:        saga.LogTypeInfo,
			Message:        fmt.Sprintf("Saga step %q deleted", e.Snapshot.Name),
		}
	default:
		return fmt.Errorf("unexpected event type %q", event.EventType())
	}

	if _, err := p.commandBus.Execute(ctx, cmd); err != nil {
		p.logger.Error("Failed to create saga log entry",
			zap.String("saga_instance_id", cmd.SagaInstanceID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// instanceUpdateLogType maps terminal failure to an ERROR entry
func instanceUpdateLogType(status saga.Status) saga.LogType {
	if status == saga.StatusFailed {
		return saga.LogTypeError
	}
	return saga.LogTypeInfo
}

// stepUpdateLogType maps terminal failure to an ERROR entry
func stepUpdateLogType(status saga.Status) saga.LogType {
	if status == saga.StatusFailed {
		return saga.LogTypeError
	}
	return saga.LogTypeInfo
}

var _ shared.EventHandler = (*LogProjector)(nil)
