package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/domain/storage"
	"github.com/promptdeck/backend/internal/infrastructure/persistence/models"
)

// GormFileRepository implements storage.FileRepository using GORM
type GormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new GormFileRepository
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

// FindByID finds a file record by ID within a tenant
func (r *GormFileRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*storage.StoredFile, error) {
	var model models.FileModel
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

// Save creates or updates a file record within a tenant
func (r *GormFileRepository) Save(ctx context.Context, tenantID uuid.UUID, f *storage.StoredFile) error {
	if f.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.FileModelFromDomain(f)
	return saveWithVersion(r.db.WithContext(ctx), model, f.Version)
}

// Delete deletes a file record within a tenant
func (r *GormFileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FileModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ storage.FileRepository = (*GormFileRepository)(nil)
