package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots.
//
// The domain event queue holds events raised since the last commit.
// Command handlers read the queue via GetDomainEvents after persisting
// the aggregate, hand the events to the event bus, and then call
// ClearDomainEvents. A failed publish leaves the queue intact.
type BaseAggregateRoot struct {
	BaseEntity
	Version         int
	domainEvents    []DomainEvent
	eventsSuspended bool
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published.
// It is a no-op while event raising is suspended, which is how
// import/reconstruction paths rebuild state without side effects.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	if a.eventsSuspended {
		return
	}
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events without clearing them
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events.
// Call only after the event bus publish has returned.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// SuspendEvents stops subsequent mutations from raising domain events
func (a *BaseAggregateRoot) SuspendEvents() {
	a.eventsSuspended = true
}

// ResumeEvents re-enables domain event raising
func (a *BaseAggregateRoot) ResumeEvents() {
	a.eventsSuspended = false
}

// EventsSuspended reports whether event raising is currently suspended
func (a *BaseAggregateRoot) EventsSuspended() bool {
	return a.eventsSuspended
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// TenantAggregateRoot extends BaseAggregateRoot with multi-tenant support.
// The tenant ID is an explicit field threaded through every repository
// call; repositories reject saves whose tenant ID mismatches the caller's.
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID uuid.UUID
}

// NewTenantAggregateRoot creates a new tenant-scoped aggregate root
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		TenantID:          tenantID,
	}
}

// GetTenantID returns the owning tenant ID
func (t *TenantAggregateRoot) GetTenantID() uuid.UUID {
	return t.TenantID
}
