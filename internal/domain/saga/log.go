package saga

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// LogType classifies a saga log entry
type LogType string

const (
	LogTypeInfo    LogType = "INFO"
	LogTypeWarning LogType = "WARNING"
	LogTypeError   LogType = "ERROR"
	LogTypeDebug   LogType = "DEBUG"
)

func validateLogType(t LogType) error {
	switch t {
	case LogTypeInfo, LogTypeWarning, LogTypeError, LogTypeDebug:
		return nil
	default:
		return shared.NewDomainError("INVALID_LOG_TYPE", "Invalid saga log type")
	}
}

// Log is one append-only audit trail entry for a saga. Entries are
// synthesized by log projectors from instance and step lifecycle
// events and never mutated afterwards. SagaStepID equals
// SagaInstanceID for instance-level entries.
type Log struct {
	shared.TenantAggregateRoot
	SagaInstanceID uuid.UUID
	SagaStepID     uuid.UUID
	LogType        LogType
	Message        string
}

// LogSnapshot is the full-state primitive form of a Log entry
type LogSnapshot struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	SagaInstanceID uuid.UUID `json:"saga_instance_id"`
	SagaStepID     uuid.UUID `json:"saga_step_id"`
	LogType        LogType   `json:"type"`
	Message        string    `json:"message"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewLog creates a new saga log entry
func NewLog(tenantID, instanceID, stepID uuid.UUID, logType LogType, message string) (*Log, error) {
	if instanceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INSTANCE", "Saga log requires a saga instance ID")
	}
	if stepID == uuid.Nil {
		// Instance-level entries reference the instance itself
		stepID = instanceID
	}
	if err := validateLogType(logType); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Saga log message cannot be empty")
	}

	log := &Log{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SagaInstanceID:      instanceID,
		SagaStepID:          stepID,
		LogType:             logType,
		Message:             message,
	}

	log.AddDomainEvent(NewLogCreatedEvent(log))

	return log, nil
}

// LogFromSnapshot reconstructs a log entry without raising events
func LogFromSnapshot(s LogSnapshot) *Log {
	log := &Log{
		SagaInstanceID: s.SagaInstanceID,
		SagaStepID:     s.SagaStepID,
		LogType:        s.LogType,
		Message:        s.Message,
	}
	log.ID = s.ID
	log.TenantID = s.TenantID
	log.Version = s.Version
	log.CreatedAt = s.CreatedAt
	log.UpdatedAt = s.UpdatedAt
	return log
}

// ToSnapshot returns the full primitive state of the log entry
func (l *Log) ToSnapshot() LogSnapshot {
	return LogSnapshot{
		ID:             l.ID,
		TenantID:       l.TenantID,
		SagaInstanceID: l.SagaInstanceID,
		SagaStepID:     l.SagaStepID,
		LogType:        l.LogType,
		Message:        l.Message,
		Version:        l.Version,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// IsInstanceLevel returns true for entries about the instance itself
func (l *Log) IsInstanceLevel() bool {
	return l.SagaStepID == l.SagaInstanceID
}
