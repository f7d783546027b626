package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/persistence/models"
)

// GormFeatureRepository implements featureflag.FeatureRepository using GORM
type GormFeatureRepository struct {
	db *gorm.DB
}

// NewGormFeatureRepository creates a new GormFeatureRepository
func NewGormFeatureRepository(db *gorm.DB) *GormFeatureRepository {
	return &GormFeatureRepository{db: db}
}

// FindByID finds a feature by ID within a tenant
func (r *GormFeatureRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*featureflag.Feature, error) {
	var model models.FeatureModel
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

// FindByKey finds a feature by its key within a tenant
func (r *GormFeatureRepository) FindByKey(ctx context.Context, tenantID uuid.UUID, key string) (*featureflag.Feature, error) {
	var model models.FeatureModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND key = ?", tenantID, strings.ToLower(key)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByKey reports whether a feature with the given key exists in the tenant
func (r *GormFeatureRepository) ExistsByKey(ctx context.Context, tenantID uuid.UUID, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeatureModel{}).
		Where("tenant_id = ? AND key = ?", tenantID, strings.ToLower(key)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a feature within a tenant
func (r *GormFeatureRepository) Save(ctx context.Context, tenantID uuid.UUID, feature *featureflag.Feature) error {
	if feature.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.FeatureModelFromDomain(feature)
	return saveWithVersion(r.db.WithContext(ctx), model, feature.Version)
}

// Delete deletes a feature within a tenant
func (r *GormFeatureRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FeatureModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ featureflag.FeatureRepository = (*GormFeatureRepository)(nil)
