package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/persistence/models"
)

// GormPromptRepository implements prompt.PromptRepository using GORM
type GormPromptRepository struct {
	db *gorm.DB
}

// NewGormPromptRepository creates a new GormPromptRepository
func NewGormPromptRepository(db *gorm.DB) *GormPromptRepository {
	return &GormPromptRepository{db: db}
}

// FindByID finds a prompt by ID within a tenant
func (r *GormPromptRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*prompt.Prompt, error) {
	var model models.PromptModel
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

// Save creates or updates a prompt within a tenant
func (r *GormPromptRepository) Save(ctx context.Context, tenantID uuid.UUID, p *prompt.Prompt) error {
	if p.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	model := models.PromptModelFromDomain(p)
	return saveWithVersion(r.db.WithContext(ctx), model, p.Version)
}

// Delete deletes a prompt within a tenant
func (r *GormPromptRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PromptModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ prompt.PromptRepository = (*GormPromptRepository)(nil)
