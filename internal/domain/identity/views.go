package identity

import (
	"time"

	"github.com/google/uuid"
)

// TenantView is the denormalized read model of a tenant
type TenantView struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Code         string       `gorm:"type:varchar(50);not null;index" json:"code"`
	Name         string       `gorm:"type:varchar(200);not null;index" json:"name"`
	Status       TenantStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ContactEmail string       `gorm:"type:varchar(200)" json:"contact_email,omitempty"`
	PlanID       *uuid.UUID   `gorm:"type:uuid;index" json:"plan_id,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (TenantView) TableName() string {
	return "tenant_views"
}

// NewTenantView builds the view from a tenant snapshot
func NewTenantView(s TenantSnapshot) *TenantView {
	return &TenantView{
		ID:           s.ID,
		Code:         s.Code,
		Name:         s.Name,
		Status:       s.Status,
		ContactEmail: s.ContactEmail,
		PlanID:       s.PlanID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// TenantViewPatch carries partial updates for a TenantView
type TenantViewPatch struct {
	Name         *string
	Status       *TenantStatus
	ContactEmail *string
	PlanID       **uuid.UUID
}

// Update applies a patch. UpdatedAt is bumped on every call whether or
// not any field changed.
func (v *TenantView) Update(p TenantViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.ContactEmail != nil {
		v.ContactEmail = *p.ContactEmail
	}
	if p.PlanID != nil {
		v.PlanID = *p.PlanID
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *TenantView) ApplySnapshot(s TenantSnapshot) {
	v.Code = s.Code
	v.Name = s.Name
	v.Status = s.Status
	v.ContactEmail = s.ContactEmail
	v.PlanID = s.PlanID
	v.UpdatedAt = time.Now()
}

// UserView is the denormalized read model of a user
type UserView struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Email       string     `gorm:"type:varchar(200);not null;index" json:"email"`
	DisplayName string     `gorm:"type:varchar(200);not null;index" json:"display_name"`
	Role        UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status      UserStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (UserView) TableName() string {
	return "user_views"
}

// NewUserView builds the view from a user snapshot
func NewUserView(s UserSnapshot) *UserView {
	return &UserView{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		Role:        s.Role,
		Status:      s.Status,
		LastLoginAt: s.LastLoginAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// UserViewPatch carries partial updates for a UserView
type UserViewPatch struct {
	DisplayName *string
	Role        *UserRole
	Status      *UserStatus
	LastLoginAt **time.Time
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *UserView) Update(p UserViewPatch) {
	if p.DisplayName != nil {
		v.DisplayName = *p.DisplayName
	}
	if p.Role != nil {
		v.Role = *p.Role
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.LastLoginAt != nil {
		v.LastLoginAt = *p.LastLoginAt
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *UserView) ApplySnapshot(s UserSnapshot) {
	v.Email = s.Email
	v.DisplayName = s.DisplayName
	v.Role = s.Role
	v.Status = s.Status
	v.LastLoginAt = s.LastLoginAt
	v.UpdatedAt = time.Now()
}
