package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/backend/internal/domain/identity"
)

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	Code         string `json:"code" binding:"required,min=2,max=50"`
	Name         string `json:"name" binding:"required,max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// UpdateTenantInput contains input for updating a tenant
type UpdateTenantInput struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// TenantDTO represents tenant data in API responses
type TenantDTO struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	ContactEmail string     `json:"contact_email,omitempty"`
	PlanID       *uuid.UUID `json:"plan_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToTenantDTO converts a domain Tenant to its response form
func ToTenantDTO(t *identity.Tenant) *TenantDTO {
	return &TenantDTO{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Status:       string(t.Status),
		ContactEmail: t.ContactEmail,
		PlanID:       t.PlanID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,max=200"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=owner admin member"`
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	DisplayName string `json:"display_name" binding:"required,max=200"`
	Role        string `json:"role" binding:"required,oneof=owner admin member"`
}

// UserDTO represents user data in API responses
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserDTO converts a domain User to its response form
func ToUserDTO(u *identity.User) *UserDTO {
	return &UserDTO{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// LoginInput contains credentials for authentication
type LoginInput struct {
	TenantCode string `json:"tenant_code" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// LoginResult contains the issued token and the authenticated user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *UserDTO  `json:"user"`
}
