package prompt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/prompt"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// CreatePromptInput contains input for creating a prompt
type CreatePromptInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Template    string `json:"template" binding:"required"`
	ModelParams string `json:"model_params"`
}

// UpdatePromptInput contains input for updating a prompt
type UpdatePromptInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Template    string `json:"template" binding:"required"`
	ModelParams string `json:"model_params"`
}

// PromptDTO represents prompt data in API responses
type PromptDTO struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Template    string    `json:"template"`
	ModelParams string    `json:"model_params"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPromptDTO(p *prompt.Prompt) *PromptDTO {
	return &PromptDTO{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Template:    p.Template,
		ModelParams: p.ModelParams,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PromptService manages tenant-scoped prompt templates
type PromptService struct {
	promptRepo prompt.PromptRepository
	promptView shared.ViewRepository[prompt.PromptView]
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(
	promptRepo prompt.PromptRepository,
	promptView shared.ViewRepository[prompt.PromptView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		promptView: promptView,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Create creates a new unpublished prompt
func (s *PromptService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePromptInput) (*PromptDTO, error) {
	s.logger.Info("Creating prompt",
		zap.String("tenant_id", tenantID.String()),
		zap.String("name", input.Name))

	prm, err := prompt.NewPrompt(tenantID, input.Name, input.Template, input.ModelParams)
	if err != nil {
		return nil, err
	}

	if err := s.promptRepo.Save(ctx, tenantID, prm); err != nil {
		s.logger.Error("Failed to create prompt", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create prompt")
	}
	if err := s.publish(ctx, prm); err != nil {
		return nil, err
	}

	return toPromptDTO(prm), nil
}

// Update changes a prompt's content
func (s *PromptService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdatePromptInput) (*PromptDTO, error) {
	prm, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := prm.Update(input.Name, input.Template, input.ModelParams); err != nil {
		return nil, err
	}

	if err := s.promptRepo.Save(ctx, tenantID, prm); err != nil {
		s.logger.Error("Failed to update prompt", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to update prompt")
	}
	if err := s.publish(ctx, prm); err != nil {
		return nil, err
	}

	return toPromptDTO(prm), nil
}

// Publish makes a prompt available for use
func (s *PromptService) Publish(ctx context.Context, tenantID, id uuid.UUID) (*PromptDTO, error) {
	prm, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := prm.Publish(); err != nil {
		return nil, err
	}

	if err := s.promptRepo.Save(ctx, tenantID, prm); err != nil {
		s.logger.Error("Failed to publish prompt", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to publish prompt")
	}
	if err := s.publish(ctx, prm); err != nil {
		return nil, err
	}

	return toPromptDTO(prm), nil
}

// Delete removes a prompt from the write store
func (s *PromptService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	prm, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}

	prm.MarkDeleted()

	if err := s.promptRepo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("Failed to delete prompt", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete prompt")
	}
	return s.publish(ctx, prm)
}

// GetByID retrieves a prompt from the write store
func (s *PromptService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PromptDTO, error) {
	prm, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toPromptDTO(prm), nil
}

// List retrieves a page of prompt views scoped to the tenant
func (s *PromptService) List(ctx context.Context, tenantID uuid.UUID, criteria shared.Criteria) (shared.Paginated[prompt.PromptView], error) {
	criteria = criteria.WithFilter("tenant_id", tenantID)
	result, err := s.promptView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list prompt views", zap.Error(err))
		return shared.Paginated[prompt.PromptView]{}, shared.DomainErrorOrInternal(err, "Failed to list prompts")
	}
	return result, nil
}

func (s *PromptService) load(ctx context.Context, tenantID, id uuid.UUID) (*prompt.Prompt, error) {
	prm, err := s.promptRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROMPT_NOT_FOUND", "Prompt not found")
		}
		s.logger.Error("Failed to find prompt", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find prompt")
	}
	return prm, nil
}

func (s *PromptService) publish(ctx context.Context, prm *prompt.Prompt) error {
	if err := s.eventBus.Publish(ctx, prm.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish prompt events",
			zap.String("prompt_id", prm.ID.String()),
			zap.Error(err))
		return err
	}
	prm.ClearDomainEvents()
	return nil
}
