package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/persistence/models"
)

// GormSagaInstanceRepository implements saga.InstanceRepository using GORM
type GormSagaInstanceRepository struct {
	db *gorm.DB
}

// NewGormSagaInstanceRepository creates a new GormSagaInstanceRepository
func NewGormSagaInstanceRepository(db *gorm.DB) *GormSagaInstanceRepository {
	return &GormSagaInstanceRepository{db: db}
}

// FindByID finds a saga instance by ID within a tenant
func (r *GormSagaInstanceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*saga.Instance, error) {
	var model models.SagaInstanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a saga instance within a tenant
func (r *GormSagaInstanceRepository) Save(ctx context.Context, tenantID uuid.UUID, inst *saga.Instance) error {
	if inst.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.SagaInstanceModelFromDomain(inst)
	return saveWithVersion(r.db.WithContext(ctx), model, inst.Version)
}

// Delete deletes a saga instance within a tenant
func (r *GormSagaInstanceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SagaInstanceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ saga.InstanceRepository = (*GormSagaInstanceRepository)(nil)

// GormSagaStepRepository implements saga.StepRepository using GORM
type GormSagaStepRepository struct {
	db *gorm.DB
}

// NewGormSagaStepRepository creates a new GormSagaStepRepository
func NewGormSagaStepRepository(db *gorm.DB) *GormSagaStepRepository {
	return &GormSagaStepRepository{db: db}
}

// FindByID finds a saga step by ID within a tenant
func (r *GormSagaStepRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*saga.Step, error) {
	var model models.SagaStepModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInstanceID returns all steps of one instance ordered by ascending execution order
func (r *GormSagaStepRepository) FindByInstanceID(ctx context.Context, tenantID, instanceID uuid.UUID) ([]saga.Step, error) {
	var stepModels []models.SagaStepModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND saga_instance_id = ?", tenantID, instanceID).
		Order("step_order ASC").
		Find(&stepModels).Error; err != nil {
		return nil, err
	}

	steps := make([]saga.Step, len(stepModels))
	for i, model := range stepModels {
		steps[i] = *model.ToDomain()
	}
	return steps, nil
}

// Save creates or updates a saga step within a tenant
func (r *GormSagaStepRepository) Save(ctx context.Context, tenantID uuid.UUID, step *saga.Step) error {
	if step.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.SagaStepModelFromDomain(step)
	return saveWithVersion(r.db.WithContext(ctx), model, step.Version)
}

// Delete deletes a saga step within a tenant
func (r *GormSagaStepRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SagaStepModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ saga.StepRepository = (*GormSagaStepRepository)(nil)

// GormSagaLogRepository implements saga.LogRepository using GORM.
// The log table is append-only, so there is no delete.
type GormSagaLogRepository struct {
	db *gorm.DB
}

// NewGormSagaLogRepository creates a new GormSagaLogRepository
func NewGormSagaLogRepository(db *gorm.DB) *GormSagaLogRepository {
	return &GormSagaLogRepository{db: db}
}

// FindByID finds a saga log entry by ID within a tenant
func (r *GormSagaLogRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*saga.Log, error) {
	var model models.SagaLogModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInstanceID returns all log entries of one instance ordered by creation time
func (r *GormSagaLogRepository) FindByInstanceID(ctx context.Context, tenantID, instanceID uuid.UUID) ([]saga.Log, error) {
	var logModels []models.SagaLogModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND saga_instance_id = ?", tenantID, instanceID).
		Order("created_at ASC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]saga.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// Save appends a saga log entry within a tenant
func (r *GormSagaLogRepository) Save(ctx context.Context, tenantID uuid.UUID, log *saga.Log) error {
	if log.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.SagaLogModelFromDomain(log)
	return saveWithVersion(r.db.WithContext(ctx), model, log.Version)
}

var _ saga.LogRepository = (*GormSagaLogRepository)(nil)
