package saga

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a saga instance or step
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// IsTerminal returns true for statuses that permit no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Instance is the aggregate root for one multi-step business
// transaction. It owns zero or more steps, referenced by instance ID
// rather than embedded. There is no compensation: when a step exhausts
// its retries the instance fails and completed steps keep their
// results for manual inspection.
type Instance struct {
	shared.TenantAggregateRoot
	Name      string
	Status    Status
	StartedAt *time.Time
	EndedAt   *time.Time
}

// InstanceSnapshot is the full-state primitive form of an Instance.
// It doubles as the event payload for instance lifecycle events.
type InstanceSnapshot struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	StartedAt *time.Time `json:"start_date,omitempty"`
	EndedAt   *time.Time `json:"end_date,omitempty"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewInstance creates a new saga instance in PENDING status
func NewInstance(tenantID uuid.UUID, name string) (*Instance, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Saga name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Saga name cannot exceed 200 characters")
	}

	instance := &Instance{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              StatusPending,
	}

	instance.AddDomainEvent(NewInstanceCreatedEvent(instance))

	return instance, nil
}

// InstanceFromSnapshot reconstructs an instance without raising events
func InstanceFromSnapshot(s InstanceSnapshot) *Instance {
	instance := &Instance{
		Name:      s.Name,
		Status:    s.Status,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
	instance.ID = s.ID
	instance.TenantID = s.TenantID
	instance.Version = s.Version
	instance.CreatedAt = s.CreatedAt
	instance.UpdatedAt = s.UpdatedAt
	return instance
}

// ToSnapshot returns the full primitive state of the instance
func (i *Instance) ToSnapshot() InstanceSnapshot {
	return InstanceSnapshot{
		ID:        i.ID,
		TenantID:  i.TenantID,
		Name:      i.Name,
		Status:    i.Status,
		StartedAt: i.StartedAt,
		EndedAt:   i.EndedAt,
		Version:   i.Version,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// Start transitions the instance from PENDING to RUNNING
func (i *Instance) Start() error {
	if i.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Saga instance can only start from PENDING status")
	}

	now := time.Now()
	i.Status = StatusRunning
	i.StartedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInstanceUpdatedEvent(i, []string{"status", "start_date"}))

	return nil
}

// Complete transitions the instance from RUNNING to COMPLETED
func (i *Instance) Complete() error {
	if i.Status != StatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Saga instance can only complete from RUNNING status")
	}

	now := time.Now()
	i.Status = StatusCompleted
	i.EndedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInstanceUpdatedEvent(i, []string{"status", "end_date"}))

	return nil
}

// Fail transitions the instance to FAILED. Allowed from RUNNING and,
// for instances that never got to start, from PENDING.
func (i *Instance) Fail() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Saga instance is already in a terminal status")
	}

	now := time.Now()
	i.Status = StatusFailed
	i.EndedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInstanceUpdatedEvent(i, []string{"status", "end_date"}))

	return nil
}

// Rename updates the saga instance name
func (i *Instance) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Saga name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Saga name cannot exceed 200 characters")
	}

	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInstanceUpdatedEvent(i, []string{"name"}))

	return nil
}

// MarkDeleted raises the deletion event; physical removal happens in
// the write store via the repository.
func (i *Instance) MarkDeleted() {
	i.AddDomainEvent(NewInstanceDeletedEvent(i))
}

// IsRunning returns true if the instance is currently running
func (i *Instance) IsRunning() bool {
	return i.Status == StatusRunning
}

// IsFinished returns true if the instance reached a terminal status
func (i *Instance) IsFinished() bool {
	return i.Status.IsTerminal()
}
