package saga

import (
	"time"

	"github.com/google/uuid"
)

// InstanceView is the denormalized read model of a saga instance.
// It is mutated only by projectors.
type InstanceView struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string     `gorm:"type:varchar(200);not null;index" json:"name"`
	Status    Status     `gorm:"type:varchar(20);not null;index" json:"status"`
	StartedAt *time.Time `json:"start_date,omitempty"`
	EndedAt   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (InstanceView) TableName() string {
	return "saga_instance_views"
}

// NewInstanceView builds the view from an instance snapshot
func NewInstanceView(s InstanceSnapshot) *InstanceView {
	return &InstanceView{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		Status:    s.Status,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// InstanceViewPatch carries partial updates for an InstanceView.
// Nil fields are left unchanged; non-nil fields (including explicit
// zero values) are applied.
type InstanceViewPatch struct {
	Name      *string
	Status    *Status
	StartedAt **time.Time
	EndedAt   **time.Time
}

// Update applies a patch. UpdatedAt is bumped on every call whether or
// not any field changed.
func (v *InstanceView) Update(p InstanceViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.StartedAt != nil {
		v.StartedAt = *p.StartedAt
	}
	if p.EndedAt != nil {
		v.EndedAt = *p.EndedAt
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot.
// Snapshot payloads make re-projection idempotent.
func (v *InstanceView) ApplySnapshot(s InstanceSnapshot) {
	v.Name = s.Name
	v.Status = s.Status
	v.StartedAt = s.StartedAt
	v.EndedAt = s.EndedAt
	v.UpdatedAt = time.Now()
}

// StepView is the denormalized read model of a saga step
type StepView struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SagaInstanceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"saga_instance_id"`
	Name           string     `gorm:"type:varchar(200);not null" json:"name"`
	StepOrder      int        `gorm:"not null;index" json:"order"`
	Status         Status     `gorm:"type:varchar(20);not null;index" json:"status"`
	StartedAt      *time.Time `json:"start_date,omitempty"`
	EndedAt        *time.Time `json:"end_date,omitempty"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message,omitempty"`
	RetryCount     int        `gorm:"not null;default:0" json:"retry_count"`
	MaxRetries     int        `gorm:"not null;default:0" json:"max_retries"`
	Payload        string     `gorm:"type:text" json:"payload"`
	Result         string     `gorm:"type:text" json:"result"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (StepView) TableName() string {
	return "saga_step_views"
}

// NewStepView builds the view from a step snapshot
func NewStepView(s StepSnapshot) *StepView {
	return &StepView{
		ID:             s.ID,
		TenantID:       s.TenantID,
		SagaInstanceID: s.SagaInstanceID,
		Name:           s.Name,
		StepOrder:      s.Order,
		Status:         s.Status,
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

// StepViewPatch carries partial updates for a StepView
type StepViewPatch struct {
	Name         *string
	Status       *Status
	StartedAt    **time.Time
	EndedAt      **time.Time
	ErrorMessage *string
	RetryCount   *int
	Result       *string
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *StepView) Update(p StepViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.StartedAt != nil {
		v.StartedAt = *p.StartedAt
	}
	if p.EndedAt != nil {
		v.EndedAt = *p.EndedAt
	}
	if p.ErrorMessage != nil {
		v.ErrorMessage = *p.ErrorMessage
	}
	if p.RetryCount != nil {
		v.RetryCount = *p.RetryCount
	}
	if p.Result != nil {
		v.Result = *p.Result
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *StepView) ApplySnapshot(s StepSnapshot) {
	v.Name = s.Name
	v.StepOrder = s.Order
	v.Status = s.Status
	v.StartedAt = s.StartedAt
	v.EndedAt = s.EndedAt
	v.ErrorMessage = s.ErrorMessage
	v.RetryCount = s.RetryCount
	v.MaxRetries = s.MaxRetries
	v.Payload = s.Payload
	v.Result = s.Result
	v.UpdatedAt = time.Now()
}

// LogView is the denormalized read model of a saga log entry
type LogView struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SagaInstanceID uuid.UUID `gorm:"type:uuid;not null;index" json:"saga_instance_id"`
	SagaStepID     uuid.UUID `gorm:"type:uuid;not null;index" json:"saga_step_id"`
	LogType        LogType   `gorm:"type:varchar(10);not null;index" json:"type"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (LogView) TableName() string {
	return "saga_log_views"
}

// NewLogView builds the view from a log snapshot
func NewLogView(s LogSnapshot) *LogView {
	return &LogView{
		ID:             s.ID,
		TenantID:       s.TenantID,
		SagaInstanceID: s.SagaInstanceID,
		SagaStepID:     s.SagaStepID,
		LogType:        s.LogType,
		Message:        s.Message,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
