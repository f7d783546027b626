package saga

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// InstanceService creates and queries saga instances and their steps.
//
// Creation runs each aggregate through the full command pipeline, so
// the audit trail starts recording from the very first event: the
// instance-created entry, then one step-created entry per step.
type InstanceService struct {
	instanceRepo      saga.InstanceRepository
	stepRepo          saga.StepRepository
	instanceView      shared.ViewRepository[saga.InstanceView]
	stepView          shared.ViewRepository[saga.StepView]
	logView           shared.ViewRepository[saga.LogView]
	eventBus          shared.EventPublisher
	defaultMaxRetries int
	logger            *zap.Logger
}

// NewInstanceService creates a new saga instance service
func NewInstanceService(
	instanceRepo saga.InstanceRepository,
	stepRepo saga.StepRepository,
	instanceView shared.ViewRepository[saga.InstanceView],
	stepView shared.ViewRepository[saga.StepView],
	logView shared.ViewRepository[saga.LogView],
	eventBus shared.EventPublisher,
	defaultMaxRetries int,
	logger *zap.Logger,
) *InstanceService {
	return &InstanceService{
		instanceRepo:      instanceRepo,
		stepRepo:          stepRepo,
		instanceView:      instanceView,
		stepView:          stepView,
		logView:           logView,
		eventBus:          eventBus,
		defaultMaxRetries: defaultMaxRetries,
		logger:            logger,
	}
}

// Create creates a saga instance with its ordered steps.
// Steps are numbered from 1 in list order.
func (s *InstanceService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSagaInput) (*SagaDTO, error) {
	s.logger.Info("Creating saga instance",
		zap.String("tenant_id", tenantID.String()),
		zap.String("name", input.Name),
		zap.Int("steps", len(input.Steps)))

	if len(input.Steps) == 0 {
		return nil, shared.NewDomainError("INVALID_STEPS", "Saga requires at least one step")
	}

	instance, err := saga.NewInstance(tenantID, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.instanceRepo.Save(ctx, tenantID, instance); err != nil {
		s.logger.Error("Failed to create saga instance", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create saga instance")
	}
	if err := s.eventBus.Publish(ctx, instance.GetDomainEvents()...); err != nil {
		return nil, err
	}
	instance.ClearDomainEvents()

	steps := make([]saga.Step, 0, len(input.Steps))
	for i, def := range input.Steps {
		maxRetries := s.defaultMaxRetries
		if def.MaxRetries != nil {
			maxRetries = *def.MaxRetries
		}

		step, err := saga.NewStep(tenantID, instance.ID, def.Name, i+1, maxRetries, def.Payload)
		if err != nil {
			return nil, err
		}
		if err := s.stepRepo.Save(ctx, tenantID, step); err != nil {
			s.logger.Error("Failed to create saga step", zap.Error(err))
			return nil, shared.DomainErrorOrInternal(err, "Failed to create saga step")
		}
		if err := s.eventBus.Publish(ctx, step.GetDomainEvents()...); err != nil {
			return nil, err
		}
		step.ClearDomainEvents()

		steps = append(steps, *step)
	}

	return s.bundle(instance, steps), nil
}

// Rename updates the saga instance name
func (s *InstanceService) Rename(ctx context.Context, tenantID, id uuid.UUID, name string) (*InstanceDTO, error) {
	instance, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := instance.Rename(name); err != nil {
		return nil, err
	}

	if err := s.instanceRepo.Save(ctx, tenantID, instance); err != nil {
		s.logger.Error("Failed to rename saga instance", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to rename saga instance")
	}
	if err := s.eventBus.Publish(ctx, instance.GetDomainEvents()...); err != nil {
		return nil, err
	}
	instance.ClearDomainEvents()

	return toInstanceDTO(instance), nil
}

// Delete removes a saga instance and its steps from the write store.
// The saga log entries remain; the trail outlives the saga.
func (s *InstanceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	instance, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if instance.IsRunning() {
		return shared.NewDomainError("SAGA_RUNNING", "Cannot delete a running saga instance")
	}

	steps, err := s.stepRepo.FindByInstanceID(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("Failed to load saga steps for delete", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete saga instance")
	}
	for i := range steps {
		step := &steps[i]
		step.MarkDeleted()
		if err := s.stepRepo.Delete(ctx, tenantID, step.ID); err != nil {
			s.logger.Error("Failed to delete saga step", zap.Error(err))
			return shared.DomainErrorOrInternal(err, "Failed to delete saga step")
		}
		if err := s.eventBus.Publish(ctx, step.GetDomainEvents()...); err != nil {
			return err
		}
		step.ClearDomainEvents()
	}

	instance.MarkDeleted()
	if err := s.instanceRepo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("Failed to delete saga instance", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete saga instance")
	}
	if err := s.eventBus.Publish(ctx, instance.GetDomainEvents()...); err != nil {
		return err
	}
	instance.ClearDomainEvents()

	return nil
}

// Get retrieves a saga instance with its steps from the write store
func (s *InstanceService) Get(ctx context.Context, tenantID, id uuid.UUID) (*SagaDTO, error) {
	instance, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.FindByInstanceID(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("Failed to load saga steps", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to load saga steps")
	}
	return s.bundle(instance, steps), nil
}

// List retrieves a page of saga instance views scoped to the tenant
func (s *InstanceService) List(ctx context.Context, tenantID uuid.UUID, criteria shared.Criteria) (shared.Paginated[saga.InstanceView], error) {
	criteria = criteria.WithFilter("tenant_id", tenantID)
	result, err := s.instanceView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list saga instance views", zap.Error(err))
		return shared.Paginated[saga.InstanceView]{}, shared.DomainErrorOrInternal(err, "Failed to list saga instances")
	}
	return result, nil
}

// ListSteps retrieves the step views of one instance in execution order
func (s *InstanceService) ListSteps(ctx context.Context, tenantID, instanceID uuid.UUID) ([]saga.StepView, error) {
	criteria := shared.NewCriteria().
		WithFilter("tenant_id", tenantID).
		WithFilter("saga_instance_id", instanceID).
		WithSort("step_order", shared.SortAsc).
		WithPage(1, 1000)
	result, err := s.stepView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list saga step views", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to list saga steps")
	}
	return result.Items, nil
}

// ListLogs retrieves the audit trail of one instance, oldest first
func (s *InstanceService) ListLogs(ctx context.Context, tenantID, instanceID uuid.UUID, criteria shared.Criteria) (shared.Paginated[saga.LogView], error) {
	criteria = criteria.
		WithFilter("tenant_id", tenantID).
		WithFilter("saga_instance_id", instanceID)
	if len(criteria.Sorts) == 0 {
		criteria = criteria.WithSort("created_at", shared.SortAsc)
	}
	result, err := s.logView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list saga log views", zap.Error(err))
		return shared.Paginated[saga.LogView]{}, shared.DomainErrorOrInternal(err, "Failed to list saga logs")
	}
	return result, nil
}

func (s *InstanceService) load(ctx context.Context, tenantID, id uuid.UUID) (*saga.Instance, error) {
	instance, err := s.instanceRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SAGA_NOT_FOUND", "Saga instance not found")
		}
		s.logger.Error("Failed to find saga instance", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find saga instance")
	}
	return instance, nil
}

func (s *InstanceService) bundle(instance *saga.Instance, steps []saga.Step) *SagaDTO {
	stepDTOs := make([]StepDTO, 0, len(steps))
	for i := range steps {
		stepDTOs = append(stepDTOs, *toStepDTO(&steps[i]))
	}
	return &SagaDTO{
		Instance: toInstanceDTO(instance),
		Steps:    stepDTOs,
	}
}
