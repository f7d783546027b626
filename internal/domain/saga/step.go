package saga

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// Step is one ordered unit of work belonging to a saga instance.
//
// Steps within one instance execute strictly by ascending Order; a
// step must not start until every lower-order step has reached a
// terminal status. A step retries on failure until RetryCount reaches
// MaxRetries, at which point it fails terminally with ErrorMessage set.
// Exhaustion is modeled as data, not as an error, so instance-level
// logic can inspect it and decide whether to halt.
type Step struct {
	shared.TenantAggregateRoot
	SagaInstanceID uuid.UUID
	Name           string
	Order          int
	Status         Status
	StartedAt      *time.Time
	EndedAt        *time.Time
	ErrorMessage   string
	RetryCount     int
	MaxRetries     int
	Payload        string // JSON object
	Result         string // JSON object
}

// StepSnapshot is the full-state primitive form of a Step.
// It doubles as the event payload for step lifecycle events.
type StepSnapshot struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	SagaInstanceID uuid.UUID  `json:"saga_instance_id"`
	Name           string     `json:"name"`
	Order          int        `json:"order"`
	Status         Status     `json:"status"`
	StartedAt      *time.Time `json:"start_date,omitempty"`
	EndedAt        *time.Time `json:"end_date,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	Payload        string     `json:"payload"`
	Result         string     `json:"result"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewStep creates a new saga step in PENDING status
func NewStep(tenantID, instanceID uuid.UUID, name string, order, maxRetries int, payload string) (*Step, error) {
	if instanceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INSTANCE", "Saga step requires a saga instance ID")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Saga step name cannot be empty")
	}
	if order < 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Saga step order cannot be negative")
	}
	if maxRetries < 0 {
		return nil, shared.NewDomainError("INVALID_MAX_RETRIES", "Saga step max retries cannot be negative")
	}
	if payload == "" {
		payload = "{}"
	}

	step := &Step{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SagaInstanceID:      instanceID,
		Name:                name,
		Order:               order,
		Status:              StatusPending,
		MaxRetries:          maxRetries,
		Payload:             payload,
		Result:              "{}",
	}

	step.AddDomainEvent(NewStepCreatedEvent(step))

	return step, nil
}

// StepFromSnapshot reconstructs a step without raising events
func StepFromSnapshot(s StepSnapshot) *Step {
	step := &Step{
		SagaInstanceID: s.SagaInstanceID,
		Name:           s.Name,
		Order:          s.Order,
		Status:         s.Status,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		ErrorMessage:   s.ErrorMessage,
		RetryCount:     s.RetryCount,
		MaxRetries:     s.MaxRetries,
		Payload:        s.Payload,
		Result:         s.Result,
	}
	step.ID = s.ID
	step.TenantID = s.TenantID
	step.Version = s.Version
	step.CreatedAt = s.CreatedAt
	step.UpdatedAt = s.UpdatedAt
	return step
}

// ToSnapshot returns the full primitive state of the step
func (s *Step) ToSnapshot() StepSnapshot {
	return StepSnapshot{
		ID:             s.ID,
		TenantID:       s.TenantID,
		SagaInstanceID: s.SagaInstanceID,
		Name:           s.Name,
		Order:          s.Order,
		Status:         s.Status,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		ErrorMessage:   s.ErrorMessage,
		RetryCount:     s.RetryCount,
		MaxRetries:     s.MaxRetries,
		Payload:        s.Payload,
		Result:         s.Result,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// Start transitions the step from PENDING to RUNNING
func (s *Step) Start() error {
	if s.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Saga step can only start from PENDING status")
	}

	now := time.Now()
	s.Status = StatusRunning
	if s.StartedAt == nil {
		s.StartedAt = &now
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewStepUpdatedEvent(s, []string{"status", "start_date"}))

	return nil
}

// Complete transitions the step from RUNNING to COMPLETED with a result
func (s *Step) Complete(result string) error {
	if s.Status != StatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Saga step can only complete from RUNNING status")
	}
	if result == "" {
		result = "{}"
	}

	now := time.Now()
	s.Status = StatusCompleted
	s.EndedAt = &now
	s.Result = result
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewStepUpdatedEvent(s, []string{"status", "end_date", "result"}))

	return nil
}

// RecordFailure records one failed execution attempt. While retries
// remain the step returns to PENDING for re-attempt; once RetryCount
// reaches MaxRetries the step fails terminally and ErrorMessage is
// set. RetryCount never exceeds MaxRetries.
func (s *Step) RecordFailure(errorMessage string) error {
	if s.Status != StatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Saga step failure can only be recorded while RUNNING")
	}
	if errorMessage == "" {
		errorMessage = "saga step execution failed"
	}

	now := time.Now()
	if s.RetryCount < s.MaxRetries {
		s.RetryCount++
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	if s.RetryCount >= s.MaxRetries {
		s.Status = StatusFailed
		s.EndedAt = &now
		s.ErrorMessage = errorMessage
		s.AddDomainEvent(NewStepUpdatedEvent(s, []string{"status", "end_date", "error_message", "retry_count"}))
		return nil
	}

	s.Status = StatusPending
	s.AddDomainEvent(NewStepUpdatedEvent(s, []string{"status", "retry_count"}))

	return nil
}

// IsExhausted returns true once the step has used all its retries
func (s *Step) IsExhausted() bool {
	return s.Status == StatusFailed
}

// IsFinished returns true if the step reached a terminal status
func (s *Step) IsFinished() bool {
	return s.Status.IsTerminal()
}

// RetriesLeft returns the number of remaining execution attempts
func (s *Step) RetriesLeft() int {
	return s.MaxRetries - s.RetryCount
}

// MarkDeleted raises the deletion event; physical removal happens in
// the write store via the repository.
func (s *Step) MarkDeleted() {
	s.AddDomainEvent(NewStepDeletedEvent(s))
}
