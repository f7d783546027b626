package featureflag

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeFeature = "Feature"

// Event type constants
const (
	EventTypeFeatureCreated = "FeatureCreated"
	EventTypeFeatureUpdated = "FeatureUpdated"
	EventTypeFeatureDeleted = "FeatureDeleted"
)

// FeatureCreatedEvent is published when a new feature flag is created
type FeatureCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot FeatureSnapshot `json:"snapshot"`
}

// NewFeatureCreatedEvent creates a new FeatureCreatedEvent
func NewFeatureCreatedEvent(feature *Feature) *FeatureCreatedEvent {
	return &FeatureCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeatureCreated, AggregateTypeFeature, feature.ID, feature.TenantID),
		Snapshot:        feature.ToSnapshot(),
	}
}

// FeatureUpdatedEvent is published when a feature flag is updated
type FeatureUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      FeatureSnapshot `json:"snapshot"`
	ChangedFields []string        `json:"changed_fields"`
}

// NewFeatureUpdatedEvent creates a new FeatureUpdatedEvent
func NewFeatureUpdatedEvent(feature *Feature, changedFields []string) *FeatureUpdatedEvent {
	return &FeatureUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeatureUpdated, AggregateTypeFeature, feature.ID, feature.TenantID),
		Snapshot:        feature.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// FeatureDeletedEvent is published when a feature flag is deleted
type FeatureDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot FeatureSnapshot `json:"snapshot"`
}

// NewFeatureDeletedEvent creates a new FeatureDeletedEvent
func NewFeatureDeletedEvent(feature *Feature) *FeatureDeletedEvent {
	return &FeatureDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeatureDeleted, AggregateTypeFeature, feature.ID, feature.TenantID),
		Snapshot:        feature.ToSnapshot(),
	}
}
