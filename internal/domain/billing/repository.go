package billing

import (
	"context"

	"github.com/promptdeck/backend/internal/domain/shared"
)

// PlanRepository is the write-side store for subscription plans
type PlanRepository interface {
	shared.Repository[SubscriptionPlan]
	ExistsByName(ctx context.Context, name string) (bool, error)
}
