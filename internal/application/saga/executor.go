package saga

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// StepHandler executes the business work of one saga step.
// It returns the step result as a JSON object string. A returned error
// counts as one failed attempt against the step's retry budget.
type StepHandler interface {
	Execute(ctx context.Context, step *saga.Step) (result string, err error)
}

// StepHandlerFunc adapts a function to the StepHandler interface
type StepHandlerFunc func(ctx context.Context, step *saga.Step) (string, error)

// Execute calls the wrapped function
func (f StepHandlerFunc) Execute(ctx context.Context, step *saga.Step) (string, error) {
	return f(ctx, step)
}

// Executor drives a saga instance through its steps.
//
// Execution is request-scoped and synchronous: there is no background
// runner, the caller blocks until the instance reaches a terminal
// status. Steps run in strict ascending order; a step's retry sub-loop
// re-attempts until its retry budget is exhausted, at which point the
// step fails terminally and the executor fails the whole instance.
// Completed steps keep their results, there is no compensation.
//
// Every state transition runs through the write store and the event
// bus, so the saga log projector records the full execution trail.
type Executor struct {
	instanceRepo saga.InstanceRepository
	stepRepo     saga.StepRepository
	eventBus     shared.EventPublisher
	stepTimeout  time.Duration
	logger       *zap.Logger
}

// NewExecutor creates a new saga executor
func NewExecutor(
	instanceRepo saga.InstanceRepository,
	stepRepo saga.StepRepository,
	eventBus shared.EventPublisher,
	stepTimeout time.Duration,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		instanceRepo: instanceRepo,
		stepRepo:     stepRepo,
		eventBus:     eventBus,
		stepTimeout:  stepTimeout,
		logger:       logger,
	}
}

// Run executes a PENDING saga instance to a terminal status.
//
// Step exhaustion is data, not an error: a saga that fails because a
// step ran out of retries returns a FAILED instance DTO and a nil
// error. A non-nil error means infrastructure trouble (store or event
// bus), in which case the write store holds the last committed state.
func (e *Executor) Run(ctx context.Context, tenantID, instanceID uuid.UUID, handler StepHandler) (*InstanceDTO, error) {
	instance, err := e.instanceRepo.FindByID(ctx, tenantID, instanceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SAGA_NOT_FOUND", "Saga instance not found")
		}
		return nil, err
	}

	if err := instance.Start(); err != nil {
		return nil, err
	}
	if err := e.commit(ctx, tenantID, instance); err != nil {
		return nil, err
	}

	e.logger.Info("Saga instance started",
		zap.String("saga_instance_id", instance.ID.String()),
		zap.String("name", instance.Name))

	steps, err := e.stepRepo.FindByInstanceID(ctx, tenantID, instanceID)
	if err != nil {
		return nil, err
	}

	for i := range steps {
		step := &steps[i]
		if step.IsFinished() {
			if step.IsExhausted() {
				return e.fail(ctx, tenantID, instance)
			}
			continue
		}

		if err := e.runStep(ctx, tenantID, step, handler); err != nil {
			return nil, err
		}
		if step.IsExhausted() {
			return e.fail(ctx, tenantID, instance)
		}
	}

	if err := instance.Complete(); err != nil {
		return nil, err
	}
	if err := e.commit(ctx, tenantID, instance); err != nil {
		return nil, err
	}

	e.logger.Info("Saga instance completed",
		zap.String("saga_instance_id", instance.ID.String()))

	return toInstanceDTO(instance), nil
}

// runStep drives one step through its retry sub-loop until it reaches
// a terminal status.
func (e *Executor) runStep(ctx context.Context, tenantID uuid.UUID, step *saga.Step, handler StepHandler) error {
	for !step.IsFinished() {
		if err := step.Start(); err != nil {
			return err
		}
		if err := e.commitStep(ctx, tenantID, step); err != nil {
			return err
		}

		result, execErr := e.execute(ctx, step, handler)
		if execErr == nil {
			if err := step.Complete(result); err != nil {
				return err
			}
			if err := e.commitStep(ctx, tenantID, step); err != nil {
				return err
			}
			return nil
		}

		e.logger.Warn("Saga step attempt failed",
			zap.String("saga_step_id", step.ID.String()),
			zap.String("name", step.Name),
			zap.Int("retry_count", step.RetryCount),
			zap.Int("max_retries", step.MaxRetries),
			zap.Error(execErr))

		if err := step.RecordFailure(execErr.Error()); err != nil {
			return err
		}
		if err := e.commitStep(ctx, tenantID, step); err != nil {
			return err
		}
	}
	return nil
}

// execute runs the handler under the configured per-attempt timeout
func (e *Executor) execute(ctx context.Context, step *saga.Step, handler StepHandler) (string, error) {
	if e.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.stepTimeout)
		defer cancel()
	}
	return handler.Execute(ctx, step)
}

// fail transitions the instance to FAILED after a step exhausted its
// retries. Completed steps keep their results.
func (e *Executor) fail(ctx context.Context, tenantID uuid.UUID, instance *saga.Instance) (*InstanceDTO, error) {
	if err := instance.Fail(); err != nil {
		return nil, err
	}
	if err := e.commit(ctx, tenantID, instance); err != nil {
		return nil, err
	}

	e.logger.Warn("Saga instance failed",
		zap.String("saga_instance_id", instance.ID.String()),
		zap.String("name", instance.Name))

	return toInstanceDTO(instance), nil
}

func (e *Executor) commit(ctx context.Context, tenantID uuid.UUID, instance *saga.Instance) error {
	if err := e.instanceRepo.Save(ctx, tenantID, instance); err != nil {
		return err
	}
	if err := e.eventBus.Publish(ctx, instance.GetDomainEvents()...); err != nil {
		return err
	}
	instance.ClearDomainEvents()
	return nil
}

func (e *Executor) commitStep(ctx context.Context, tenantID uuid.UUID, step *saga.Step) error {
	if err := e.stepRepo.Save(ctx, tenantID, step); err != nil {
		return err
	}
	if err := e.eventBus.Publish(ctx, step.GetDomainEvents()...); err != nil {
		return err
	}
	step.ClearDomainEvents()
	return nil
}
