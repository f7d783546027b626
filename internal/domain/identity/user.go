package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/promptdeck/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

// UserRole is the coarse role of a user within its tenant
type UserRole string

const (
	UserRoleOwner  UserRole = "owner"
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a user account belonging to one tenant
type User struct {
	shared.TenantAggregateRoot
	Email        string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	LastLoginAt  *time.Time
}

// UserSnapshot is the full-state primitive form of a User
type UserSnapshot struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser creates a new user in pending status
func NewUser(tenantID uuid.UUID, email, displayName, passwordHash string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               strings.ToLower(email),
		DisplayName:         displayName,
		PasswordHash:        passwordHash,
		Role:                role,
		Status:              UserStatusPending,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// UserFromSnapshot reconstructs a user without raising events
func UserFromSnapshot(s UserSnapshot) *User {
	user := &User{
		Email:        s.Email,
		DisplayName:  s.DisplayName,
		PasswordHash: s.PasswordHash,
		Role:         s.Role,
		Status:       s.Status,
		LastLoginAt:  s.LastLoginAt,
	}
	user.ID = s.ID
	user.TenantID = s.TenantID
	user.Version = s.Version
	user.CreatedAt = s.CreatedAt
	user.UpdatedAt = s.UpdatedAt
	return user
}

// ToSnapshot returns the full primitive state of the user
func (u *User) ToSnapshot() UserSnapshot {
	return UserSnapshot{
		ID:           u.ID,
		TenantID:     u.TenantID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		LastLoginAt:  u.LastLoginAt,
		Version:      u.Version,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Update updates the user's profile fields
func (u *User) Update(displayName string, role UserRole) error {
	if displayName == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if err := validateRole(role); err != nil {
		return err
	}

	u.DisplayName = displayName
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserUpdatedEvent(u, []string{"display_name", "role"}))

	return nil
}

// Activate activates a pending or inactive user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserUpdatedEvent(u, []string{"status"}))

	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserUpdatedEvent(u, []string{"status"}))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChangePassword replaces the password hash. Credentials are not part
// of any projected view, so no event is raised.
func (u *User) ChangePassword(newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RecordLogin stamps the last successful login time.
// Login bookkeeping is not projected, so no event is raised.
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
	u.IncrementVersion()
}

// MarkDeleted raises the deletion event; physical removal happens in
// the write store via the repository.
func (u *User) MarkDeleted() {
	u.AddDomainEvent(NewUserDeletedEvent(u))
}

// IsActive returns true if the user can authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email must contain @")
	}
	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case UserRoleOwner, UserRoleAdmin, UserRoleMember:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Invalid user role")
	}
}
