package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// TenantRepository is the write-side store for tenants.
// Tenants are the scoping root themselves, so the repository is not
// tenant-scoped.
type TenantRepository interface {
	shared.Repository[Tenant]
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// UserRepository is the write-side store for users
type UserRepository interface {
	shared.TenantRepository[User]
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}
