package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// TenantService handles tenant management commands and queries.
//
// Commands run the full pipeline: preconditions against the write
// store, aggregate mutation, Save, then synchronous event publication.
// A publish failure is returned to the caller with the write store
// already updated; the read store is stale until the next mutation.
type TenantService struct {
	tenantRepo identity.TenantRepository
	tenantView shared.ViewRepository[identity.TenantView]
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	tenantView shared.ViewRepository[identity.TenantView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		tenantView: tenantView,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Create creates a new tenant
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*TenantDTO, error) {
	s.logger.Info("Creating new tenant",
		zap.String("code", input.Code),
		zap.String("name", input.Name))

	exists, err := s.tenantRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		s.logger.Error("Failed to check tenant code existence", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to check code availability")
	}
	if exists {
		return nil, shared.NewDomainError("CODE_EXISTS", "Tenant code already exists")
	}

	tenant, err := identity.NewTenant(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	if input.ContactEmail != "" {
		if err := tenant.Update(tenant.Name, input.ContactEmail); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to create tenant", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create tenant")
	}
	if err := s.publish(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant created successfully",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code))

	return ToTenantDTO(tenant), nil
}

// Update updates a tenant's basic information
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tenant.Update(input.Name, input.ContactEmail); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to update tenant")
	}
	if err := s.publish(ctx, tenant); err != nil {
		return nil, err
	}

	return ToTenantDTO(tenant), nil
}

// AssignPlan links the tenant to a subscription plan
func (s *TenantService) AssignPlan(ctx context.Context, id, planID uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	tenant.AssignPlan(planID)

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to assign plan", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to assign plan")
	}
	if err := s.publish(ctx, tenant); err != nil {
		return nil, err
	}

	return ToTenantDTO(tenant), nil
}

// Suspend suspends the tenant
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.transition(ctx, id, (*identity.Tenant).Suspend)
}

// Activate activates the tenant
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.transition(ctx, id, (*identity.Tenant).Activate)
}

// Delete removes a tenant from the write store
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	tenant.MarkDeleted()

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete tenant", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete tenant")
	}
	return s.publish(ctx, tenant)
}

// GetByID retrieves a tenant from the write store
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTenantDTO(tenant), nil
}

// GetView retrieves a tenant view from the read store
func (s *TenantService) GetView(ctx context.Context, id uuid.UUID) (*identity.TenantView, error) {
	view, err := s.tenantView.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to query tenant view", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to query tenant view")
	}
	if view == nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	return view, nil
}

// List retrieves a page of tenant views from the read store
func (s *TenantService) List(ctx context.Context, criteria shared.Criteria) (shared.Paginated[identity.TenantView], error) {
	result, err := s.tenantView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list tenant views", zap.Error(err))
		return shared.Paginated[identity.TenantView]{}, shared.DomainErrorOrInternal(err, "Failed to list tenants")
	}
	return result, nil
}

func (s *TenantService) load(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to find tenant", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find tenant")
	}
	return tenant, nil
}

func (s *TenantService) transition(ctx context.Context, id uuid.UUID, op func(*identity.Tenant) error) (*TenantDTO, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(tenant); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to save tenant")
	}
	if err := s.publish(ctx, tenant); err != nil {
		return nil, err
	}
	return ToTenantDTO(tenant), nil
}

// publish pushes the aggregate's pending events through the event bus.
// The queue is cleared only on success so a retry can republish.
func (s *TenantService) publish(ctx context.Context, tenant *identity.Tenant) error {
	if err := s.eventBus.Publish(ctx, tenant.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish tenant events",
			zap.String("tenant_id", tenant.ID.String()),
			zap.Error(err))
		return err
	}
	tenant.ClearDomainEvents()
	return nil
}
