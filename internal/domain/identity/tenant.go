package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant represents an organization in the multi-tenant system.
// It is the aggregate root for tenant-related operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	Status       TenantStatus
	ContactEmail string
	PlanID       *uuid.UUID
}

// TenantSnapshot is the full-state primitive form of a Tenant.
// It doubles as the event payload for tenant lifecycle events.
type TenantSnapshot struct {
	ID           uuid.UUID    `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Status       TenantStatus `json:"status"`
	ContactEmail string       `json:"contact_email,omitempty"`
	PlanID       *uuid.UUID   `json:"plan_id,omitempty"`
	Version      int          `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTenant creates a new tenant with required fields
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            TenantStatusActive,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// TenantFromSnapshot reconstructs a tenant without raising events
func TenantFromSnapshot(s TenantSnapshot) *Tenant {
	tenant := &Tenant{
		Code:         s.Code,
		Name:         s.Name,
		Status:       s.Status,
		ContactEmail: s.ContactEmail,
		PlanID:       s.PlanID,
	}
	tenant.ID = s.ID
	tenant.Version = s.Version
	tenant.CreatedAt = s.CreatedAt
	tenant.UpdatedAt = s.UpdatedAt
	return tenant
}

// ToSnapshot returns the full primitive state of the tenant
func (t *Tenant) ToSnapshot() TenantSnapshot {
	return TenantSnapshot{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Status:       t.Status,
		ContactEmail: t.ContactEmail,
		PlanID:       t.PlanID,
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name, contactEmail string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	if contactEmail != "" && len(contactEmail) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email cannot exceed 200 characters")
	}

	t.Name = name
	t.ContactEmail = contactEmail
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t, []string{"name", "contact_email"}))

	return nil
}

// AssignPlan links the tenant to a subscription plan
func (t *Tenant) AssignPlan(planID uuid.UUID) {
	t.PlanID = &planID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t, []string{"plan_id"}))
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t, []string{"status"}))

	return nil
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t, []string{"status"}))

	return nil
}

// MarkDeleted raises the deletion event; physical removal happens in
// the write store via the repository.
func (t *Tenant) MarkDeleted() {
	t.AddDomainEvent(NewTenantDeletedEvent(t))
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func validateTenantCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Tenant code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Tenant code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Tenant code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
