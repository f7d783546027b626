package featureflag

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// FeatureView is the denormalized read model of a feature flag
type FeatureView struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Key         string    `gorm:"type:varchar(100);not null;index" json:"key"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Enabled     bool      `gorm:"not null;index" json:"enabled"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (FeatureView) TableName() string {
	return "feature_views"
}

// NewFeatureView builds the view from a feature snapshot
func NewFeatureView(s FeatureSnapshot) *FeatureView {
	return &FeatureView{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Key:         s.Key,
		Description: s.Description,
		Enabled:     s.Enabled,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FeatureViewPatch carries partial updates for a FeatureView
type FeatureViewPatch struct {
	Description *string
	Enabled     *bool
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *FeatureView) Update(p FeatureViewPatch) {
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Enabled != nil {
		v.Enabled = *p.Enabled
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *FeatureView) ApplySnapshot(s FeatureSnapshot) {
	v.Key = s.Key
	v.Description = s.Description
	v.Enabled = s.Enabled
	v.UpdatedAt = time.Now()
}

// FeatureRepository is the write-side store for feature flags
type FeatureRepository interface {
	shared.TenantRepository[Feature]
	FindByKey(ctx context.Context, tenantID uuid.UUID, key string) (*Feature, error)
	ExistsByKey(ctx context.Context, tenantID uuid.UUID, key string) (bool, error)
}
