package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// UserService handles user management within a tenant.
// Every method takes the tenant ID explicitly; it never trusts IDs
// embedded in the input payload.
type UserService struct {
	userRepo identity.UserRepository
	userView shared.ViewRepository[identity.UserView]
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	userView shared.ViewRepository[identity.UserView],
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		userView: userView,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create creates a new user in the tenant
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, input CreateUserInput) (*UserDTO, error) {
	s.logger.Info("Creating new user",
		zap.String("tenant_id", tenantID.String()),
		zap.String("email", input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already registered in this tenant")
	}

	hash, err := identity.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tenantID, input.Email, input.DisplayName, hash, identity.UserRole(input.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, tenantID, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to create user")
	}
	if err := s.publish(ctx, user); err != nil {
		return nil, err
	}

	return ToUserDTO(user), nil
}

// Update updates a user's display name and role
func (s *UserService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := user.Update(input.DisplayName, identity.UserRole(input.Role)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, tenantID, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to update user")
	}
	if err := s.publish(ctx, user); err != nil {
		return nil, err
	}

	return ToUserDTO(user), nil
}

// ChangePassword replaces the user's credential hash.
// Credentials are not projected, so no events are published.
func (s *UserService) ChangePassword(ctx context.Context, tenantID, id uuid.UUID, newPassword string) error {
	user, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, tenantID, user); err != nil {
		s.logger.Error("Failed to change password", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to change password")
	}
	return nil
}

// Activate activates a deactivated user
func (s *UserService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	return s.transition(ctx, tenantID, id, (*identity.User).Activate)
}

// Deactivate deactivates an active user
func (s *UserService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	return s.transition(ctx, tenantID, id, (*identity.User).Deactivate)
}

// Delete removes a user from the write store
func (s *UserService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	user, err := s.load(ctx, tenantID, id)
	if err != nil {
		return err
	}

	user.MarkDeleted()

	if err := s.userRepo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.DomainErrorOrInternal(err, "Failed to delete user")
	}
	return s.publish(ctx, user)
}

// GetByID retrieves a user from the write store
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	user, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(user), nil
}

// List retrieves a page of user views scoped to the tenant
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, criteria shared.Criteria) (shared.Paginated[identity.UserView], error) {
	criteria = criteria.WithFilter("tenant_id", tenantID)
	result, err := s.userView.FindByCriteria(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to list user views", zap.Error(err))
		return shared.Paginated[identity.UserView]{}, shared.DomainErrorOrInternal(err, "Failed to list users")
	}
	return result, nil
}

func (s *UserService) load(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to find user")
	}
	return user, nil
}

func (s *UserService) transition(ctx context.Context, tenantID, id uuid.UUID, op func(*identity.User) error) (*UserDTO, error) {
	user, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := op(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, tenantID, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Failed to save user")
	}
	if err := s.publish(ctx, user); err != nil {
		return nil, err
	}
	return ToUserDTO(user), nil
}

func (s *UserService) publish(ctx context.Context, user *identity.User) error {
	if err := s.eventBus.Publish(ctx, user.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish user events",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return err
	}
	user.ClearDomainEvents()
	return nil
}
