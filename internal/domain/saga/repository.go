package saga

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// InstanceRepository is the write-side store for saga instances
type InstanceRepository interface {
	shared.TenantRepository[Instance]
}

// StepRepository is the write-side store for saga steps
type StepRepository interface {
	shared.TenantRepository[Step]
	// FindByInstanceID returns all steps of one instance ordered by
	// ascending execution order
	FindByInstanceID(ctx context.Context, tenantID, instanceID uuid.UUID) ([]Step, error)
}

// LogRepository is the write-side store for saga log entries.
// Logs are append-only: there is no delete.
type LogRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Log, error)
	Save(ctx context.Context, tenantID uuid.UUID, log *Log) error
	FindByInstanceID(ctx context.Context, tenantID, instanceID uuid.UUID) ([]Log, error)
}
