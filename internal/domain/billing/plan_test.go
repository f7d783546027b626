package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriptionPlan(t *testing.T) {
	t.Run("creates plan successfully", func(t *testing.T) {
		plan, err := NewSubscriptionPlan("Pro", decimal.NewFromInt(49), "USD", IntervalMonthly, 50, 1000)

		require.NoError(t, err)
		assert.Equal(t, "Pro", plan.Name)
		assert.True(t, plan.Price.Equal(decimal.NewFromInt(49)))
		assert.True(t, plan.Active)
		assert.Len(t, plan.GetDomainEvents(), 1)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		plan, err := NewSubscriptionPlan("Pro", decimal.NewFromInt(-1), "USD", IntervalMonthly, 1, 1)
		assert.Error(t, err)
		assert.Nil(t, plan)
	})

	t.Run("fails with bad currency", func(t *testing.T) {
		plan, err := NewSubscriptionPlan("Pro", decimal.NewFromInt(1), "US", IntervalMonthly, 1, 1)
		assert.Error(t, err)
		assert.Nil(t, plan)
	})

	t.Run("fails with unknown interval", func(t *testing.T) {
		plan, err := NewSubscriptionPlan("Pro", decimal.NewFromInt(1), "USD", BillingInterval("weekly"), 1, 1)
		assert.Error(t, err)
		assert.Nil(t, plan)
	})
}

func TestSubscriptionPlan_Update(t *testing.T) {
	plan, err := NewSubscriptionPlan("Pro", decimal.NewFromInt(49), "USD", IntervalMonthly, 50, 1000)
	require.NoError(t, err)
	plan.ClearDomainEvents()

	require.NoError(t, plan.Update(decimal.NewFromInt(59), 100, 2000))

	assert.True(t, plan.Price.Equal(decimal.NewFromInt(59)))
	assert.Equal(t, 100, plan.MaxUsers)
	require.Len(t, plan.GetDomainEvents(), 1)
	updated, ok := plan.GetDomainEvents()[0].(*PlanUpdatedEvent)
	require.True(t, ok)
	assert.Contains(t, updated.ChangedFields, "price")
}

func TestSubscriptionPlan_Retire(t *testing.T) {
	plan, _ := NewSubscriptionPlan("Pro", decimal.NewFromInt(49), "USD", IntervalMonthly, 50, 1000)

	require.NoError(t, plan.Retire())
	assert.False(t, plan.Active)

	assert.Error(t, plan.Retire())
}

func TestPlan_SnapshotRoundTrip(t *testing.T) {
	plan, err := NewSubscriptionPlan("Pro", decimal.NewFromFloat(49.99), "USD", IntervalYearly, 50, 1000)
	require.NoError(t, err)

	rebuilt := PlanFromSnapshot(plan.ToSnapshot())

	assert.Equal(t, plan.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}

func TestPlanView_Update(t *testing.T) {
	plan, _ := NewSubscriptionPlan("Pro", decimal.NewFromInt(49), "USD", IntervalMonthly, 50, 1000)
	view := NewPlanView(plan.ToSnapshot())

	active := false
	price := decimal.NewFromInt(0)
	view.Update(PlanViewPatch{Active: &active, Price: &price})

	assert.False(t, view.Active)
	assert.True(t, view.Price.Equal(decimal.NewFromInt(0)))
	assert.Equal(t, "Pro", view.Name)
}
