package billing

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePlan = "SubscriptionPlan"

// Event type constants
const (
	EventTypePlanCreated = "SubscriptionPlanCreated"
	EventTypePlanUpdated = "SubscriptionPlanUpdated"
	EventTypePlanDeleted = "SubscriptionPlanDeleted"
)

// PlanCreatedEvent is published when a new plan is created
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot PlanSnapshot `json:"snapshot"`
}

// NewPlanCreatedEvent creates a new PlanCreatedEvent
func NewPlanCreatedEvent(plan *SubscriptionPlan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, AggregateTypePlan, plan.ID, plan.ID),
		Snapshot:        plan.ToSnapshot(),
	}
}

// PlanUpdatedEvent is published when a plan is updated
type PlanUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      PlanSnapshot `json:"snapshot"`
	ChangedFields []string     `json:"changed_fields"`
}

// NewPlanUpdatedEvent creates a new PlanUpdatedEvent
func NewPlanUpdatedEvent(plan *SubscriptionPlan, changedFields []string) *PlanUpdatedEvent {
	return &PlanUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanUpdated, AggregateTypePlan, plan.ID, plan.ID),
		Snapshot:        plan.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// PlanDeletedEvent is published when a plan is deleted
type PlanDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot PlanSnapshot `json:"snapshot"`
}

// NewPlanDeletedEvent creates a new PlanDeletedEvent
func NewPlanDeletedEvent(plan *SubscriptionPlan) *PlanDeletedEvent {
	return &PlanDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanDeleted, AggregateTypePlan, plan.ID, plan.ID),
		Snapshot:        plan.ToSnapshot(),
	}
}
