package featureflag

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeature(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates feature disabled", func(t *testing.T) {
		feature, err := NewFeature(tenantID, "Dark.Mode", "UI dark mode")

		require.NoError(t, err)
		assert.Equal(t, "dark.mode", feature.Key)
		assert.False(t, feature.Enabled)
		assert.Len(t, feature.GetDomainEvents(), 1)
	})

	t.Run("fails with empty key", func(t *testing.T) {
		feature, err := NewFeature(tenantID, "", "")
		assert.Error(t, err)
		assert.Nil(t, feature)
	})

	t.Run("fails with invalid key characters", func(t *testing.T) {
		feature, err := NewFeature(tenantID, "dark mode!", "")
		assert.Error(t, err)
		assert.Nil(t, feature)
	})
}

func TestFeature_Toggle(t *testing.T) {
	feature, err := NewFeature(uuid.New(), "beta", "")
	require.NoError(t, err)
	feature.ClearDomainEvents()

	require.NoError(t, feature.Enable())
	assert.True(t, feature.Enabled)
	assert.Error(t, feature.Enable())

	require.NoError(t, feature.Disable())
	assert.False(t, feature.Enabled)
	assert.Error(t, feature.Disable())

	assert.Len(t, feature.GetDomainEvents(), 2)
}

func TestFeature_SnapshotRoundTrip(t *testing.T) {
	feature, err := NewFeature(uuid.New(), "beta", "beta access")
	require.NoError(t, err)
	require.NoError(t, feature.Enable())

	rebuilt := FeatureFromSnapshot(feature.ToSnapshot())

	assert.Equal(t, feature.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}
