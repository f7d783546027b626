package saga

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	tenantID := uuid.New()
	instanceID := uuid.New()
	stepID := uuid.New()

	t.Run("creates step-level entry", func(t *testing.T) {
		log, err := NewLog(tenantID, instanceID, stepID, LogTypeInfo, "step started")

		require.NoError(t, err)
		assert.Equal(t, instanceID, log.SagaInstanceID)
		assert.Equal(t, stepID, log.SagaStepID)
		assert.Equal(t, LogTypeInfo, log.LogType)
		assert.False(t, log.IsInstanceLevel())
		require.Len(t, log.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeLogCreated, log.GetDomainEvents()[0].EventType())
	})

	t.Run("instance-level entry uses instance ID as step ID", func(t *testing.T) {
		log, err := NewLog(tenantID, instanceID, uuid.Nil, LogTypeInfo, "instance created")

		require.NoError(t, err)
		assert.Equal(t, instanceID, log.SagaStepID)
		assert.True(t, log.IsInstanceLevel())
	})

	t.Run("fails without instance ID", func(t *testing.T) {
		log, err := NewLog(tenantID, uuid.Nil, uuid.Nil, LogTypeInfo, "msg")
		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("fails with invalid log type", func(t *testing.T) {
		log, err := NewLog(tenantID, instanceID, uuid.Nil, LogType("TRACE"), "msg")
		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("fails with empty message", func(t *testing.T) {
		log, err := NewLog(tenantID, instanceID, uuid.Nil, LogTypeError, "")
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestLog_SnapshotRoundTrip(t *testing.T) {
	log, err := NewLog(uuid.New(), uuid.New(), uuid.New(), LogTypeWarning, "retrying step")
	require.NoError(t, err)

	rebuilt := LogFromSnapshot(log.ToSnapshot())

	assert.Equal(t, log.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}
