package saga

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/backend/internal/domain/saga"
)

// StepDefinition describes one step of a saga at creation time.
// Order is assigned from list position; MaxRetries falls back to the
// configured default when nil.
type StepDefinition struct {
	Name       string `json:"name" binding:"required,max=200"`
	MaxRetries *int   `json:"max_retries" binding:"omitempty,min=0"`
	Payload    string `json:"payload"`
}

// CreateSagaInput contains input for creating a saga instance with its
// ordered steps
type CreateSagaInput struct {
	Name  string           `json:"name" binding:"required,max=200"`
	Steps []StepDefinition `json:"steps" binding:"required,min=1,dive"`
}

// InstanceDTO represents saga instance data in API responses
type InstanceDTO struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"start_date,omitempty"`
	EndedAt   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toInstanceDTO(i *saga.Instance) *InstanceDTO {
	return &InstanceDTO{
		ID:        i.ID,
		TenantID:  i.TenantID,
		Name:      i.Name,
		Status:    string(i.Status),
		StartedAt: i.StartedAt,
		EndedAt:   i.EndedAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// StepDTO represents saga step data in API responses
type StepDTO struct {
	ID             uuid.UUID  `json:"id"`
	SagaInstanceID uuid.UUID  `json:"saga_instance_id"`
	Name           string     `json:"name"`
	Order          int        `json:"order"`
	Status         string     `json:"status"`
	StartedAt      *time.Time `json:"start_date,omitempty"`
	EndedAt        *time.Time `json:"end_date,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	Payload        string     `json:"payload"`
	Result         string     `json:"result"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toStepDTO(s *saga.Step) *StepDTO {
	return &StepDTO{
		ID:             s.ID,
		SagaInstanceID: s.SagaInstanceID,
		Name:           s.Name,
		Order:          s.Order,
		Status:         string(s.Status),
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		ErrorMessage:   s.ErrorMessage,
		RetryCount:     s.RetryCount,
		MaxRetries:     s.MaxRetries,
		Payload:        s.Payload,
		Result:         s.Result,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// SagaDTO bundles an instance with its ordered steps
type SagaDTO struct {
	Instance *InstanceDTO `json:"instance"`
	Steps    []StepDTO    `json:"steps"`
}
