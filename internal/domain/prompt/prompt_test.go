package prompt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrompt(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates prompt unpublished", func(t *testing.T) {
		p, err := NewPrompt(tenantID, "summarize", "Summarize: {{text}}", `{"temperature":0.2}`)

		require.NoError(t, err)
		assert.False(t, p.Published)
		assert.Equal(t, `{"temperature":0.2}`, p.ModelParams)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("defaults empty model params", func(t *testing.T) {
		p, err := NewPrompt(tenantID, "summarize", "Summarize: {{text}}", "")
		require.NoError(t, err)
		assert.Equal(t, "{}", p.ModelParams)
	})

	t.Run("fails with empty template", func(t *testing.T) {
		p, err := NewPrompt(tenantID, "summarize", "", "")
		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestPrompt_Publish(t *testing.T) {
	p, err := NewPrompt(uuid.New(), "summarize", "Summarize: {{text}}", "")
	require.NoError(t, err)

	require.NoError(t, p.Publish())
	assert.True(t, p.Published)
	assert.Error(t, p.Publish())
}

func TestPrompt_SnapshotRoundTrip(t *testing.T) {
	p, err := NewPrompt(uuid.New(), "summarize", "Summarize: {{text}}", `{"temperature":0.2}`)
	require.NoError(t, err)
	require.NoError(t, p.Publish())

	rebuilt := PromptFromSnapshot(p.ToSnapshot())

	assert.Equal(t, p.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}
