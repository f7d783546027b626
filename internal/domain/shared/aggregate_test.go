package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent(aggID uuid.UUID) DomainEvent {
	e := NewBaseDomainEvent("TestEvent", "Test", aggID, aggID)
	return &e
}

func TestBaseAggregateRoot_DomainEvents(t *testing.T) {
	t.Run("queue grows by one per raised event", func(t *testing.T) {
		agg := NewBaseAggregateRoot()

		for i := 1; i <= 5; i++ {
			agg.AddDomainEvent(newTestEvent(agg.ID))
			assert.Len(t, agg.GetDomainEvents(), i)
		}
	})

	t.Run("peek does not clear the queue", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.AddDomainEvent(newTestEvent(agg.ID))

		_ = agg.GetDomainEvents()
		assert.Len(t, agg.GetDomainEvents(), 1)
	})

	t.Run("clear empties the queue", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.AddDomainEvent(newTestEvent(agg.ID))
		agg.AddDomainEvent(newTestEvent(agg.ID))

		agg.ClearDomainEvents()
		assert.Empty(t, agg.GetDomainEvents())
	})

	t.Run("suspended aggregate raises no events", func(t *testing.T) {
		agg := NewBaseAggregateRoot()

		agg.SuspendEvents()
		agg.AddDomainEvent(newTestEvent(agg.ID))
		assert.Empty(t, agg.GetDomainEvents())
		assert.True(t, agg.EventsSuspended())

		agg.ResumeEvents()
		agg.AddDomainEvent(newTestEvent(agg.ID))
		assert.Len(t, agg.GetDomainEvents(), 1)
	})

	t.Run("events are returned in raise order", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		first := newTestEvent(agg.ID)
		second := newTestEvent(agg.ID)

		agg.AddDomainEvent(first)
		agg.AddDomainEvent(second)

		events := agg.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, first.EventID(), events[0].EventID())
		assert.Equal(t, second.EventID(), events[1].EventID())
	})
}

func TestBaseAggregateRoot_Version(t *testing.T) {
	t.Run("starts at version 1", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		assert.Equal(t, 1, agg.GetVersion())
	})

	t.Run("increments", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.IncrementVersion()
		agg.IncrementVersion()
		assert.Equal(t, 3, agg.GetVersion())
	})
}

func TestNewTenantAggregateRoot(t *testing.T) {
	tenantID := uuid.New()
	agg := NewTenantAggregateRoot(tenantID)

	assert.Equal(t, tenantID, agg.GetTenantID())
	assert.NotEqual(t, uuid.Nil, agg.GetID())
	assert.Empty(t, agg.GetDomainEvents())
}
