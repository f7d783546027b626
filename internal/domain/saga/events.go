package saga

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeInstance = "SagaInstance"
	AggregateTypeStep     = "SagaStep"
	AggregateTypeLog      = "SagaLog"
)

// Event type constants
const (
	EventTypeInstanceCreated = "SagaInstanceCreated"
	EventTypeInstanceUpdated = "SagaInstanceUpdated"
	EventTypeInstanceDeleted = "SagaInstanceDeleted"
	EventTypeStepCreated     = "SagaStepCreated"
	EventTypeStepUpdated     = "SagaStepUpdated"
	EventTypeStepDeleted     = "SagaStepDeleted"
	EventTypeLogCreated      = "SagaLogCreated"
)

// InstanceCreatedEvent is published when a new saga instance is created
type InstanceCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot InstanceSnapshot `json:"snapshot"`
}

// NewInstanceCreatedEvent creates a new InstanceCreatedEvent
func NewInstanceCreatedEvent(instance *Instance) *InstanceCreatedEvent {
	return &InstanceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstanceCreated, AggregateTypeInstance, instance.ID, instance.TenantID),
		Snapshot:        instance.ToSnapshot(),
	}
}

// InstanceUpdatedEvent is published when a saga instance changes state.
// ChangedFields lists the snapshot keys touched by the mutation, in
// the order they were applied.
type InstanceUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      InstanceSnapshot `json:"snapshot"`
	ChangedFields []string         `json:"changed_fields"`
}

// NewInstanceUpdatedEvent creates a new InstanceUpdatedEvent
func NewInstanceUpdatedEvent(instance *Instance, changedFields []string) *InstanceUpdatedEvent {
	return &InstanceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstanceUpdated, AggregateTypeInstance, instance.ID, instance.TenantID),
		Snapshot:        instance.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// InstanceDeletedEvent is published when a saga instance is deleted
type InstanceDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot InstanceSnapshot `json:"snapshot"`
}

// NewInstanceDeletedEvent creates a new InstanceDeletedEvent
func NewInstanceDeletedEvent(instance *Instance) *InstanceDeletedEvent {
	return &InstanceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstanceDeleted, AggregateTypeInstance, instance.ID, instance.TenantID),
		Snapshot:        instance.ToSnapshot(),
	}
}

// StepCreatedEvent is published when a new saga step is created
type StepCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot StepSnapshot `json:"snapshot"`
}

// NewStepCreatedEvent creates a new StepCreatedEvent
func NewStepCreatedEvent(step *Step) *StepCreatedEvent {
	return &StepCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStepCreated, AggregateTypeStep, step.ID, step.TenantID),
		Snapshot:        step.ToSnapshot(),
	}
}

// StepUpdatedEvent is published when a saga step changes state
type StepUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      StepSnapshot `json:"snapshot"`
	ChangedFields []string     `json:"changed_fields"`
}

// NewStepUpdatedEvent creates a new StepUpdatedEvent
func NewStepUpdatedEvent(step *Step, changedFields []string) *StepUpdatedEvent {
	return &StepUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStepUpdated, AggregateTypeStep, step.ID, step.TenantID),
		Snapshot:        step.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// StepDeletedEvent is published when a saga step is deleted
type StepDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot StepSnapshot `json:"snapshot"`
}

// NewStepDeletedEvent creates a new StepDeletedEvent
func NewStepDeletedEvent(step *Step) *StepDeletedEvent {
	return &StepDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStepDeleted, AggregateTypeStep, step.ID, step.TenantID),
		Snapshot:        step.ToSnapshot(),
	}
}

// LogCreatedEvent is published when a saga log entry is created.
// Saga logs are append-only; there are no update or delete events.
type LogCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot LogSnapshot `json:"snapshot"`
}

// NewLogCreatedEvent creates a new LogCreatedEvent
func NewLogCreatedEvent(log *Log) *LogCreatedEvent {
	return &LogCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLogCreated, AggregateTypeLog, log.ID, log.TenantID),
		Snapshot:        log.ToSnapshot(),
	}
}
