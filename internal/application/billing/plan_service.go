package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/billing"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// CreatePlanInput contains input for creating a subscription plan
type CreatePlanInput struct {
	Name       string `json:"name" binding:"required,max=200"`
	Price      string `json:"price" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
	Interval   string `json:"interval" binding:"required,oneof=monthly yearly"`
	MaxUsers   int    `json:"max_users" binding:"min=0"`
	MaxPrompts int    `json:"max_prompts" binding:"min=0"`
}

// UpdatePlanInput contains input for updating a plan's price and limits
type UpdatePlanInput struct {
	Price      string `json:"price" binding:"required"`
	MaxUsers   int    `json:"max_users" binding:"min=0"`
	MaxPrompts int    `json:"max_prompts" binding:"min=0"`
}

// PlanDTO represents plan data in API responses
type PlanDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Currency   string    `json:"currency"`
	Interval   string    `json:"interval"`
	MaxUsers   int       `json:"max_users"`
	MaxPrompts int       `json:"max_prompts"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toPlanDTO(p *billing.SubscriptionPlan) *PlanDTO {
	return &PlanDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price.StringFixed(2),
		Currency:   p.Currency,
		Interval:   string(p.Interval),
		MaxUsers:   p.MaxUsers,
		MaxPrompts: p.MaxPrompts,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// PlanService manages platform-wide subscription plans
type PlanService struct {
	planRepo billing.PlanRepository
	planView shared.ViewRepository[billing.PlanView]
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(
	planRepo billing.PlanRepository,
	planView shared.ViewRepository[billing.PlanView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		planView: planView,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create creates a new subscription plan
func (s *PlanService) Create(ctx context.Context, input CreatePlanInput) (*PlanDTO, error) {
	s.logger.Info("Creating subscription plan", zap.String("name", input.Name))

	exists, err := s.planRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check plan name existence", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to check plan name availability")
	}
	if exists {
		return nil, shared.NewDomainError("PLAN_EXISTS", "Plan name already exists")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is not a valid decimal")
	}

	plan, err := billing.NewSubscriptionPlan(
		input.Name, price, input.Currency,
		billing.BillingInterval(input.Interval),
		input.MaxUsers, input.MaxPrompts,
	)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to create plan", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create plan")
	}
	if err := s.publish(ctx, plan); err != nil {
		return nil, err
	}

	return toPlanDTO(plan), nil
}

// Update changes a plan's price and limits
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, input UpdatePlanInput) (*PlanDTO, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is not a valid decimal")
	}

	if err := plan.Update(price, input.MaxUsers, input.MaxPrompts); err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to update plan", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to update plan")
	}
	if err := s.publish(ctx, plan); err != nil {
		return nil, err
	}

	return toPlanDTO(plan), nil
}

// Retire deactivates a plan for new subscriptions
func (s *PlanService) Retire(ctx context.Context, id uuid.UUID) (*PlanDTO, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := plan.Retire(); err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to retire plan", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to retire plan")
	}
	if err := s.publish(ctx, plan); err != nil {
		return nil, err
	}

	return toPlanDTO(plan), nil
}

// Delete removes a plan from the write store
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	plan, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	plan.MarkDeleted()

	if err := s.planRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete plan", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete plan")
	}
	return s.publish(ctx, plan)
}

// GetByID retrieves a plan from the write store
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (*PlanDTO, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlanDTO(plan), nil
}

// List retrieves a page of plan views from the read store
func (s *PlanService) List(ctx context.Context, criteria shared.Criteria) (shared.Paginated[billing.PlanView], error) {
	result, err := s.planView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list plan views", zap.Error(err))
		return shared.Paginated[billing.PlanView]{}, shared.DomainErrorOrInternal(err, "Failed to list plans")
	}
	return result, nil
}

func (s *PlanService) load(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Plan not found")
		}
		s.logger.Error("Failed to find plan", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find plan")
	}
	return plan, nil
}

func (s *PlanService) publish(ctx context.Context, plan *billing.SubscriptionPlan) error {
	if err := s.eventBus.Publish(ctx, plan.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish plan events",
			zap.String("plan_id", plan.ID.String()),
			zap.Error(err))
		return err
	}
	plan.ClearDomainEvents()
	return nil
}
