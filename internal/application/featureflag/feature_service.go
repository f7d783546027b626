package featureflag

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// CreateFeatureInput contains input for creating a feature flag
type CreateFeatureInput struct {
	Key         string `json:"key" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// FeatureDTO represents feature flag data in API responses
type FeatureDTO struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Key         string    `json:"key"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toFeatureDTO(f *featureflag.Feature) *FeatureDTO {
	return &FeatureDTO{
		ID:          f.ID,
		TenantID:    f.TenantID,
		Key:         f.Key,
		Description: f.Description,
		Enabled:     f.Enabled,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FeatureService manages tenant-scoped feature flags
type FeatureService struct {
	featureRepo featureflag.FeatureRepository
	featureView shared.ViewRepository[featureflag.FeatureView]
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewFeatureService creates a new feature service
func NewFeatureService(
	featureRepo featureflag.FeatureRepository,
	featureView shared.ViewRepository[featureflag.FeatureView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *FeatureService {
	return &FeatureService{
		featureRepo: featureRepo,
		featureView: featureView,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create creates a new disabled feature flag
func (s *FeatureService) Create(ctx context.Context, tenantID uuid.UUID, input CreateFeatureInput) (*FeatureDTO, error) {
	s.logger.Info("Creating feature flag",
		zap.String("tenant_id", tenantID.String()),
		zap.String("key", input.Key))

	exists, err := s.featureRepo.ExistsByKey(ctx, tenantID, input.Key)
	if err != nil {
		s.logger.Error("Failed to check feature key existence", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to check key availability")
	}
	if exists {
		return nil, shared.NewDomainError("FLAG_EXISTS", "Feature key already exists in this tenant")
	}

	feature, err := featureflag.NewFeature(tenantID, input.Key, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.featureRepo.Save(ctx, tenantID, feature); err != nil {
		s.logger.Error("Failed to create feature", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create feature")
	}
	if err := s.publish(ctx, feature); err != nil {
		return nil, err
	}

	return toFeatureDTO(feature), nil
}

// Enable turns a feature on
func (s *FeatureService) Enable(ctx context.Context, tenantID, id uuid.UUID) (*FeatureDTO, error) {
	return s.transition(ctx, tenantID, id, (*featureflag.Feature).Enable)
}

// Disable turns a feature off
func (s *FeatureService) Disable(ctx context.Context, tenantID, id uuid.UUID) (*FeatureDTO, error) {
	return s.transition(ctx, tenantID, id, (*featureflag.Feature).Disable)
}

// UpdateDescription changes a feature's description
func (s *FeatureService) UpdateDescription(ctx context.Context, tenantID, id uuid.UUID, description string) (*FeatureDTO, error) {
	feature, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	feature.UpdateDescription(description)

	if err := s.featureRepo.Save(ctx, tenantID, feature); err != nil {
		s.logger.Error("Failed to update feature", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to update feature")
	}
	if err := s.publish(ctx, feature); err != nil {
		return nil, err
	}

	return toFeatureDTO(feature), nil
}

// Delete removes a feature flag from the write store
func (s *FeatureService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	feature, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}

	feature.MarkDeleted()

	if err := s.featureRepo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("Failed to delete feature", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete feature")
	}
	return s.publish(ctx, feature)
}

// IsEnabled evaluates a feature by key against the write store.
// Unknown keys evaluate to disabled rather than an error.
func (s *FeatureService) IsEnabled(ctx context.Context, tenantID uuid.UUID, key string) (bool, error) {
	feature, err := s.featureRepo.FindByKey(ctx, tenantID, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		s.logger.Error("Failed to evaluate feature", zap.Error(err))
		return false, shared.DomainErrorOrInternal(err, "Failed to evaluate feature")
	}
	return feature.Enabled, nil
}

// List retrieves a page of feature views scoped to the tenant
func (s *FeatureService) List(ctx context.Context, tenantID uuid.UUID, criteria shared.Criteria) (shared.Paginated[featureflag.FeatureView], error) {
	criteria = criteria.WithFilter("tenant_id", tenantID)
	result, err := s.featureView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list feature views", zap.Error(err))
		return shared.Paginated[featureflag.FeatureView]{}, shared.DomainErrorOrInternal(err, "Failed to list features")
	}
	return result, nil
}

func (s *FeatureService) load(ctx context.Context, tenantID, id uuid.UUID) (*featureflag.Feature, error) {
	feature, err := s.featureRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FLAG_NOT_FOUND", "Feature not found")
		}
		s.logger.Error("Failed to find feature", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find feature")
	}
	return feature, nil
}

func (s *FeatureService) transition(ctx context.Context, tenantID, id uuid.UUID, op func(*featureflag.Feature) error) (*FeatureDTO, error) {
	feature, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := op(feature); err != nil {
		return nil, err
	}
	if err := s.featureRepo.Save(ctx, tenantID, feature); err != nil {
		s.logger.Error("Failed to save feature", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to save feature")
	}
	if err := s.publish(ctx, feature); err != nil {
		return nil, err
	}
	return toFeatureDTO(feature), nil
}

func (s *FeatureService) publish(ctx context.Context, feature *featureflag.Feature) error {
	if err := s.eventBus.Publish(ctx, feature.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish feature events",
			zap.String("feature_id", feature.ID.String()),
			zap.Error(err))
		return err
	}
	feature.ClearDomainEvents()
	return nil
}
