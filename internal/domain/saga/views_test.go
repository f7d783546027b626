package saga

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceView_Update(t *testing.T) {
	instance, err := NewInstance(uuid.New(), "saga")
	require.NoError(t, err)
	view := NewInstanceView(instance.ToSnapshot())

	t.Run("nil patch fields leave values unchanged", func(t *testing.T) {
		before := *view
		view.Update(InstanceViewPatch{})

		assert.Equal(t, before.Name, view.Name)
		assert.Equal(t, before.Status, view.Status)
	})

	t.Run("updated at bumps even when nothing changed", func(t *testing.T) {
		before := view.UpdatedAt
		time.Sleep(time.Millisecond)
		view.Update(InstanceViewPatch{})

		assert.True(t, view.UpdatedAt.After(before))
	})

	t.Run("set fields are applied", func(t *testing.T) {
		status := StatusRunning
		now := time.Now()
		started := &now
		view.Update(InstanceViewPatch{Status: &status, StartedAt: &started})

		assert.Equal(t, StatusRunning, view.Status)
		assert.Equal(t, started, view.StartedAt)
	})

	t.Run("explicit nil clears a pointer field", func(t *testing.T) {
		var cleared *time.Time
		view.Update(InstanceViewPatch{StartedAt: &cleared})

		assert.Nil(t, view.StartedAt)
	})
}

func TestStepView_Update(t *testing.T) {
	step, err := NewStep(uuid.New(), uuid.New(), "step", 1, 2, "{}")
	require.NoError(t, err)
	view := NewStepView(step.ToSnapshot())

	status := StatusFailed
	msg := "boom"
	retries := 2
	view.Update(StepViewPatch{Status: &status, ErrorMessage: &msg, RetryCount: &retries})

	assert.Equal(t, StatusFailed, view.Status)
	assert.Equal(t, "boom", view.ErrorMessage)
	assert.Equal(t, 2, view.RetryCount)
	assert.Equal(t, "step", view.Name)
}

func TestStepView_ApplySnapshot(t *testing.T) {
	step, err := NewStep(uuid.New(), uuid.New(), "step", 1, 2, "{}")
	require.NoError(t, err)
	view := NewStepView(step.ToSnapshot())

	require.NoError(t, step.Start())
	require.NoError(t, step.Complete(`{"done":true}`))

	view.ApplySnapshot(step.ToSnapshot())

	assert.Equal(t, StatusCompleted, view.Status)
	assert.Equal(t, `{"done":true}`, view.Result)

	t.Run("re-applying the same snapshot is idempotent", func(t *testing.T) {
		before := *view
		view.ApplySnapshot(step.ToSnapshot())

		assert.Equal(t, before.Status, view.Status)
		assert.Equal(t, before.Result, view.Result)
		assert.Equal(t, before.RetryCount, view.RetryCount)
	})
}

func TestNewLogView(t *testing.T) {
	log, err := NewLog(uuid.New(), uuid.New(), uuid.Nil, LogTypeInfo, "created")
	require.NoError(t, err)

	view := NewLogView(log.ToSnapshot())

	assert.Equal(t, log.ID, view.ID)
	assert.Equal(t, log.SagaInstanceID, view.SagaInstanceID)
	assert.Equal(t, log.SagaInstanceID, view.SagaStepID)
	assert.Equal(t, LogTypeInfo, view.LogType)
	assert.Equal(t, "created", view.Message)
}
