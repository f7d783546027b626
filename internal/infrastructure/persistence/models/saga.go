package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/backend/internal/domain/saga"
)

// SagaInstanceModel is the persistence model for the saga Instance aggregate.
type SagaInstanceModel struct {
	TenantAggregateModel
	Name      string      `gorm:"type:varchar(200);not null"`
	Status    saga.Status `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	StartedAt *time.Time
	EndedAt   *time.Time
}

// TableName returns the table name for GORM
func (SagaInstanceModel) TableName() string {
	return "saga_instances"
}

// ToDomain converts the persistence model to a domain Instance.
func (m *SagaInstanceModel) ToDomain() *saga.Instance {
	inst := &saga.Instance{
		Name:      m.Name,
		Status:    m.Status,
		StartedAt: m.StartedAt,
		EndedAt:   m.EndedAt,
	}
	m.PopulateTenantAggregateRoot(&inst.TenantAggregateRoot)
	return inst
}

// FromDomain populates the persistence model from a domain Instance.
func (m *SagaInstanceModel) FromDomain(inst *saga.Instance) {
	m.FromDomainTenantAggregateRoot(inst.TenantAggregateRoot)
	m.Name = inst.Name
	m.Status = inst.Status
	m.StartedAt = inst.StartedAt
	m.EndedAt = inst.EndedAt
}

// SagaInstanceModelFromDomain creates a new persistence model from a domain Instance.
func SagaInstanceModelFromDomain(inst *saga.Instance) *SagaInstanceModel {
	m := &SagaInstanceModel{}
	m.FromDomain(inst)
	return m
}

// SagaStepModel is the persistence model for the saga Step aggregate.
type SagaStepModel struct {
	TenantAggregateModel
	SagaInstanceID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name           string      `gorm:"type:varchar(200);not null"`
	StepOrder      int         `gorm:"not null;default:0"`
	Status         saga.Status `gorm:"type:varchar(20);not null;default:'PENDING'"`
	StartedAt      *time.Time
	EndedAt        *time.Time
	ErrorMessage   string `gorm:"type:text"`
	RetryCount     int    `gorm:"not null;default:0"`
	MaxRetries     int    `gorm:"not null;default:0"`
	Payload        string `gorm:"type:text"` // JSON object
	Result         string `gorm:"type:text"` // JSON object
}

// TableName returns the table name for GORM
func (SagaStepModel) TableName() string {
	return "saga_steps"
}

// ToDomain converts the persistence model to a domain Step.
func (m *SagaStepModel) ToDomain() *saga.Step {
	step := &saga.Step{
		SagaInstanceID: m.SagaInstanceID,
		Name:           m.Name,
		Order:          m.StepOrder,
		Status:         m.Status,
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
		ErrorMessage:   m.ErrorMessage,
		RetryCount:     m.RetryCount,
		MaxRetries:     m.MaxRetries,
		Payload:        m.Payload,
		Result:         m.Result,
	}
	m.PopulateTenantAggregateRoot(&step.TenantAggregateRoot)
	return step
}

// FromDomain populates the persistence model from a domain Step.
func (m *SagaStepModel) FromDomain(step *saga.Step) {
	m.FromDomainTenantAggregateRoot(step.TenantAggregateRoot)
	m.SagaInstanceID = step.SagaInstanceID
	m.Name = step.Name
	m.StepOrder = step.Order
	m.Status = step.Status
	m.StartedAt = step.StartedAt
	m.EndedAt = step.EndedAt
	m.ErrorMessage = step.ErrorMessage
	m.RetryCount = step.RetryCount
	m.MaxRetries = step.MaxRetries
	m.Payload = step.Payload
	m.Result = step.Result
}

// SagaStepModelFromDomain creates a new persistence model from a domain Step.
func SagaStepModelFromDomain(step *saga.Step) *SagaStepModel {
	m := &SagaStepModel{}
	m.FromDomain(step)
	return m
}

// SagaLogModel is the persistence model for the append-only saga Log.
type SagaLogModel struct {
	TenantAggregateModel
	SagaInstanceID uuid.UUID    `gorm:"type:uuid;not null;index"`
	SagaStepID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	LogType        saga.LogType `gorm:"type:varchar(10);not null;default:'INFO'"`
	Message        string       `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (SagaLogModel) TableName() string {
	return "saga_logs"
}

// ToDomain converts the persistence model to a domain Log.
func (m *SagaLogModel) ToDomain() *saga.Log {
	log := &saga.Log{
		SagaInstanceID: m.SagaInstanceID,
		SagaStepID:     m.SagaStepID,
		LogType:        m.LogType,
		Message:        m.Message,
	}
	m.PopulateTenantAggregateRoot(&log.TenantAggregateRoot)
	return log
}

// FromDomain populates the persistence model from a domain Log.
func (m *SagaLogModel) FromDomain(log *saga.Log) {
	m.FromDomainTenantAggregateRoot(log.TenantAggregateRoot)
	m.SagaInstanceID = log.SagaInstanceID
	m.SagaStepID = log.SagaStepID
	m.LogType = log.LogType
	m.Message = log.Message
}

// SagaLogModelFromDomain creates a new persistence model from a domain Log.
func SagaLogModelFromDomain(log *saga.Log) *SagaLogModel {
	m := &SagaLogModel{}
	m.FromDomain(log)
	return m
}
