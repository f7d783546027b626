package identity

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserCreated = "UserCreated"
	EventTypeUserUpdated = "UserUpdated"
	EventTypeUserDeleted = "UserDeleted"
)

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot UserSnapshot `json:"snapshot"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.TenantID),
		Snapshot:        user.ToSnapshot(),
	}
}

// UserUpdatedEvent is published when a user is updated
type UserUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      UserSnapshot `json:"snapshot"`
	ChangedFields []string     `json:"changed_fields"`
}

// NewUserUpdatedEvent creates a new UserUpdatedEvent
func NewUserUpdatedEvent(user *User, changedFields []string) *UserUpdatedEvent {
	return &UserUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserUpdated, AggregateTypeUser, user.ID, user.TenantID),
		Snapshot:        user.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// UserDeletedEvent is published when a user is deleted
type UserDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot UserSnapshot `json:"snapshot"`
}

// NewUserDeletedEvent creates a new UserDeletedEvent
func NewUserDeletedEvent(user *User) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeleted, AggregateTypeUser, user.ID, user.TenantID),
		Snapshot:        user.ToSnapshot(),
	}
}
