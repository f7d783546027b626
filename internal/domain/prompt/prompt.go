package prompt

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Prompt is a tenant-scoped prompt template with model parameters
type Prompt struct {
	shared.TenantAggregateRoot
	Name        string
	Template    string
	ModelParams string // JSON object, e.g. {"temperature":0.7}
	Published   bool
}

// PromptSnapshot is the full-state primitive form of a Prompt
type PromptSnapshot struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Template    string    `json:"template"`
	ModelParams string    `json:"model_params"`
	Published   bool      `json:"published"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPrompt creates a new unpublished prompt
func NewPrompt(tenantID uuid.UUID, name, template, modelParams string) (*Prompt, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Prompt name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Prompt name cannot exceed 200 characters")
	}
	if template == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Prompt template cannot be empty")
	}
	if modelParams == "" {
		modelParams = "{}"
	}

	prompt := &Prompt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Template:            template,
		ModelParams:         modelParams,
	}

	prompt.AddDomainEvent(NewPromptCreatedEvent(prompt))

	return prompt, nil
}

// PromptFromSnapshot reconstructs a prompt without raising events
func PromptFromSnapshot(s PromptSnapshot) *Prompt {
	prompt := &Prompt{
		Name:        s.Name,
		Template:    s.Template,
		ModelParams: s.ModelParams,
		Published:   s.Published,
	}
	prompt.ID = s.ID
	prompt.TenantID = s.TenantID
	prompt.Version = s.Version
	prompt.CreatedAt = s.CreatedAt
	prompt.UpdatedAt = s.UpdatedAt
	return prompt
}

// ToSnapshot returns the full primitive state of the prompt
func (p *Prompt) ToSnapshot() PromptSnapshot {
	return PromptSnapshot{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Template:    p.Template,
		ModelParams: p.ModelParams,
		Published:   p.Published,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Update changes the prompt content
func (p *Prompt) Update(name, template, modelParams string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Prompt name cannot be empty")
	}
	if template == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Prompt template cannot be empty")
	}
	if modelParams == "" {
		modelParams = "{}"
	}

	p.Name = name
	p.Template = template
	p.ModelParams = modelParams
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPromptUpdatedEvent(p, []string{"name", "template", "model_params"}))

	return nil
}

// Publish makes the prompt available for use
func (p *Prompt) Publish() error {
	if p.Published {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Prompt is already published")
	}

	p.Published = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPromptUpdatedEvent(p, []string{"published"}))

	return nil
}

// MarkDeleted raises the deletion event
func (p *Prompt) MarkDeleted() {
	p.AddDomainEvent(NewPromptDeletedEvent(p))
}
