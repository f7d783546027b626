package featureflag

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Feature is a tenant-scoped feature toggle
type Feature struct {
	shared.TenantAggregateRoot
	Key         string
	Description string
	Enabled     bool
}

// FeatureSnapshot is the full-state primitive form of a Feature
type FeatureSnapshot struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Key         string    `json:"key"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFeature creates a new disabled feature flag
func NewFeature(tenantID uuid.UUID, key, description string) (*Feature, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	feature := &Feature{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Key:                 strings.ToLower(key),
		Description:         description,
		Enabled:             false,
	}

	feature.AddDomainEvent(NewFeatureCreatedEvent(feature))

	return feature, nil
}

// FeatureFromSnapshot reconstructs a feature without raising events
func FeatureFromSnapshot(s FeatureSnapshot) *Feature {
	feature := &Feature{
		Key:         s.Key,
		Description: s.Description,
		Enabled:     s.Enabled,
	}
	feature.ID = s.ID
	feature.TenantID = s.TenantID
	feature.Version = s.Version
	feature.CreatedAt = s.CreatedAt
	feature.UpdatedAt = s.UpdatedAt
	return feature
}

// ToSnapshot returns the full primitive state of the feature
func (f *Feature) ToSnapshot() FeatureSnapshot {
	return FeatureSnapshot{
		ID:          f.ID,
		TenantID:    f.TenantID,
		Key:         f.Key,
		Description: f.Description,
		Enabled:     f.Enabled,
		Version:     f.Version,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Enable turns the feature on
func (f *Feature) Enable() error {
	if f.Enabled {
		return shared.NewDomainError("ALREADY_ENABLED", "Feature is already enabled")
	}

	f.Enabled = true
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFeatureUpdatedEvent(f, []string{"enabled"}))

	return nil
}

// Disable turns the feature off
func (f *Feature) Disable() error {
	if !f.Enabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Feature is already disabled")
	}

	f.Enabled = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFeatureUpdatedEvent(f, []string{"enabled"}))

	return nil
}

// UpdateDescription changes the feature description
func (f *Feature) UpdateDescription(description string) {
	f.Description = description
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFeatureUpdatedEvent(f, []string{"description"}))
}

// MarkDeleted raises the deletion event
func (f *Feature) MarkDeleted() {
	f.AddDomainEvent(NewFeatureDeletedEvent(f))
}

func validateKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_KEY", "Feature key cannot be empty")
	}
	if len(key) > 100 {
		return shared.NewDomainError("INVALID_KEY", "Feature key cannot exceed 100 characters")
	}
	for _, r := range key {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.') {
			return shared.NewDomainError("INVALID_KEY", "Feature key can only contain letters, numbers, underscores, hyphens, and dots")
		}
	}
	return nil
}
