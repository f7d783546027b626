package models

import (
	"github.com/promptdeck/backend/internal/domain/featureflag"
)

// FeatureModel is the persistence model for the Feature aggregate.
type FeatureModel struct {
	TenantAggregateModel
	Key         string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
	Enabled     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (FeatureModel) TableName() string {
	return "features"
}

// ToDomain converts the persistence model to a domain Feature.
func (m *FeatureModel) ToDomain() *featureflag.Feature {
	f := &featureflag.Feature{
		Key:         m.Key,
		Description: m.Description,
		Enabled:     m.Enabled,
	}
	m.PopulateTenantAggregateRoot(&f.TenantAggregateRoot)
	return f
}

// FromDomain populates the persistence model from a domain Feature.
func (m *FeatureModel) FromDomain(f *featureflag.Feature) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Key = f.Key
	m.Description = f.Description
	m.Enabled = f.Enabled
}

// FeatureModelFromDomain creates a new persistence model from a domain Feature.
func FeatureModelFromDomain(f *featureflag.Feature) *FeatureModel {
	m := &FeatureModel{}
	m.FromDomain(f)
	return m
}
