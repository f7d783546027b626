package saga

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStep(t *testing.T, maxRetries int) *Step {
	t.Helper()
	step, err := NewStep(uuid.New(), uuid.New(), "reserve-stock", 1, maxRetries, `{"sku":"A-1"}`)
	require.NoError(t, err)
	step.ClearDomainEvents()
	return step
}

func TestNewStep(t *testing.T) {
	tenantID := uuid.New()
	instanceID := uuid.New()

	t.Run("creates step successfully", func(t *testing.T) {
		step, err := NewStep(tenantID, instanceID, "charge-payment", 2, 3, `{"amount":10}`)

		require.NoError(t, err)
		assert.Equal(t, instanceID, step.SagaInstanceID)
		assert.Equal(t, "charge-payment", step.Name)
		assert.Equal(t, 2, step.Order)
		assert.Equal(t, StatusPending, step.Status)
		assert.Equal(t, 0, step.RetryCount)
		assert.Equal(t, 3, step.MaxRetries)
		assert.Equal(t, `{"amount":10}`, step.Payload)
		assert.Equal(t, "{}", step.Result)
		require.Len(t, step.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeStepCreated, step.GetDomainEvents()[0].EventType())
	})

	t.Run("defaults empty payload to empty object", func(t *testing.T) {
		step, err := NewStep(tenantID, instanceID, "noop", 0, 0, "")
		require.NoError(t, err)
		assert.Equal(t, "{}", step.Payload)
	})

	t.Run("fails without instance ID", func(t *testing.T) {
		step, err := NewStep(tenantID, uuid.Nil, "noop", 0, 0, "")
		assert.Error(t, err)
		assert.Nil(t, step)
	})

	t.Run("fails with negative order", func(t *testing.T) {
		step, err := NewStep(tenantID, instanceID, "noop", -1, 0, "")
		assert.Error(t, err)
		assert.Nil(t, step)
	})

	t.Run("fails with negative max retries", func(t *testing.T) {
		step, err := NewStep(tenantID, instanceID, "noop", 0, -1, "")
		assert.Error(t, err)
		assert.Nil(t, step)
	})
}

func TestStep_StartAndComplete(t *testing.T) {
	t.Run("pending to running to completed", func(t *testing.T) {
		step := newTestStep(t, 3)

		require.NoError(t, step.Start())
		assert.Equal(t, StatusRunning, step.Status)
		assert.NotNil(t, step.StartedAt)

		require.NoError(t, step.Complete(`{"ok":true}`))
		assert.Equal(t, StatusCompleted, step.Status)
		assert.NotNil(t, step.EndedAt)
		assert.Equal(t, `{"ok":true}`, step.Result)
		assert.True(t, step.IsFinished())
		assert.False(t, step.IsExhausted())
	})

	t.Run("cannot complete without starting", func(t *testing.T) {
		step := newTestStep(t, 3)
		assert.Error(t, step.Complete("{}"))
	})

	t.Run("cannot start a running step", func(t *testing.T) {
		step := newTestStep(t, 3)
		require.NoError(t, step.Start())
		assert.Error(t, step.Start())
	})
}

func TestStep_RetryLoop(t *testing.T) {
	t.Run("retry count goes 0 to maxRetries and fails on the last attempt", func(t *testing.T) {
		step := newTestStep(t, 3)

		// Attempt 1: back to PENDING
		require.NoError(t, step.Start())
		require.NoError(t, step.RecordFailure("boom"))
		assert.Equal(t, 1, step.RetryCount)
		assert.Equal(t, StatusPending, step.Status)
		assert.Empty(t, step.ErrorMessage)

		// Attempt 2: back to PENDING
		require.NoError(t, step.Start())
		require.NoError(t, step.RecordFailure("boom"))
		assert.Equal(t, 2, step.RetryCount)
		assert.Equal(t, StatusPending, step.Status)

		// Attempt 3: retries exhausted, terminal FAILED
		require.NoError(t, step.Start())
		require.NoError(t, step.RecordFailure("boom"))
		assert.Equal(t, 3, step.RetryCount)
		assert.Equal(t, StatusFailed, step.Status)
		assert.Equal(t, "boom", step.ErrorMessage)
		assert.NotNil(t, step.EndedAt)
		assert.True(t, step.IsExhausted())
	})

	t.Run("retry count never exceeds max retries", func(t *testing.T) {
		step := newTestStep(t, 2)
		for i := 0; i < 2; i++ {
			require.NoError(t, step.Start())
			require.NoError(t, step.RecordFailure("boom"))
		}

		assert.Equal(t, StatusFailed, step.Status)
		assert.Equal(t, step.MaxRetries, step.RetryCount)

		// Terminal: a further failure is rejected and changes nothing
		assert.Error(t, step.RecordFailure("again"))
		assert.Equal(t, step.MaxRetries, step.RetryCount)
		assert.Equal(t, StatusFailed, step.Status)
	})

	t.Run("zero max retries fails immediately", func(t *testing.T) {
		step := newTestStep(t, 0)
		require.NoError(t, step.Start())
		require.NoError(t, step.RecordFailure("boom"))

		assert.Equal(t, 0, step.RetryCount)
		assert.Equal(t, StatusFailed, step.Status)
		assert.Equal(t, "boom", step.ErrorMessage)
	})

	t.Run("failure can only be recorded while running", func(t *testing.T) {
		step := newTestStep(t, 3)
		assert.Error(t, step.RecordFailure("boom"))
	})

	t.Run("start date survives re-attempts", func(t *testing.T) {
		step := newTestStep(t, 3)
		require.NoError(t, step.Start())
		first := step.StartedAt
		require.NoError(t, step.RecordFailure("boom"))
		require.NoError(t, step.Start())

		assert.Equal(t, first, step.StartedAt)
	})
}

func TestStep_RetriesLeft(t *testing.T) {
	step := newTestStep(t, 3)
	assert.Equal(t, 3, step.RetriesLeft())

	require.NoError(t, step.Start())
	require.NoError(t, step.RecordFailure("boom"))
	assert.Equal(t, 2, step.RetriesLeft())
}

func TestStep_SnapshotRoundTrip(t *testing.T) {
	step := newTestStep(t, 3)
	require.NoError(t, step.Start())
	require.NoError(t, step.RecordFailure("boom"))

	rebuilt := StepFromSnapshot(step.ToSnapshot())

	assert.Equal(t, step.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}

func TestStep_UpdatedEventCarriesChangedFields(t *testing.T) {
	step := newTestStep(t, 1)
	require.NoError(t, step.Start())
	step.ClearDomainEvents()

	require.NoError(t, step.RecordFailure("boom"))

	require.Len(t, step.GetDomainEvents(), 1)
	updated, ok := step.GetDomainEvents()[0].(*StepUpdatedEvent)
	require.True(t, ok)
	assert.Contains(t, updated.ChangedFields, "status")
	assert.Contains(t, updated.ChangedFields, "retry_count")
	assert.Equal(t, StatusFailed, updated.Snapshot.Status)
}
