package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the write-side store for one aggregate type.
//
// The write store is the single source of truth. Save has upsert
// semantics keyed by the aggregate ID. Command preconditions only ever
// consult the write store, never the read store.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, aggregate *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TenantRepository is a write-side store scoped to a tenant. Every call
// carries the tenant ID explicitly; implementations filter by it and
// reject saves whose aggregate tenant ID mismatches.
type TenantRepository[T any] interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	Save(ctx context.Context, tenantID uuid.UUID, aggregate *T) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
