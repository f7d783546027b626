package prompt

import (
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePrompt = "Prompt"

// Event type constants
const (
	EventTypePromptCreated = "PromptCreated"
	EventTypePromptUpdated = "PromptUpdated"
	EventTypePromptDeleted = "PromptDeleted"
)

// PromptCreatedEvent is published when a new prompt is created
type PromptCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot PromptSnapshot `json:"snapshot"`
}

// NewPromptCreatedEvent creates a new PromptCreatedEvent
func NewPromptCreatedEvent(prompt *Prompt) *PromptCreatedEvent {
	return &PromptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromptCreated, AggregateTypePrompt, prompt.ID, prompt.TenantID),
		Snapshot:        prompt.ToSnapshot(),
	}
}

// PromptUpdatedEvent is published when a prompt is updated
type PromptUpdatedEvent struct {
	shared.BaseDomainEvent
	Snapshot      PromptSnapshot `json:"snapshot"`
	ChangedFields []string       `json:"changed_fields"`
}

// NewPromptUpdatedEvent creates a new PromptUpdatedEvent
func NewPromptUpdatedEvent(prompt *Prompt, changedFields []string) *PromptUpdatedEvent {
	return &PromptUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromptUpdated, AggregateTypePrompt, prompt.ID, prompt.TenantID),
		Snapshot:        prompt.ToSnapshot(),
		ChangedFields:   changedFields,
	}
}

// PromptDeletedEvent is published when a prompt is deleted
type PromptDeletedEvent struct {
	shared.BaseDomainEvent
	Snapshot PromptSnapshot `json:"snapshot"`
}

// NewPromptDeletedEvent creates a new PromptDeletedEvent
func NewPromptDeletedEvent(prompt *Prompt) *PromptDeletedEvent {
	return &PromptDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromptDeleted, AggregateTypePrompt, prompt.ID, prompt.TenantID),
		Snapshot:        prompt.ToSnapshot(),
	}
}
