package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/domain/identity"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned on any authentication failure.
// The same error covers unknown tenant, unknown email and bad password
// so responses do not leak which part was wrong.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")

// AuthService authenticates users and issues access tokens
type AuthService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user within a tenant and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	tenant, err := s.tenantRepo.FindByCode(ctx, input.TenantCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to find tenant for login", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Login failed")
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Tenant is not active")
	}

	user, err := s.userRepo.FindByEmail(ctx, tenant.ID, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to find user for login", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Login failed")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_INACTIVE", "User account is not active")
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Login attempt with wrong password",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// Login bookkeeping only touches the write store; RecordLogin
	// raises no events.
	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, tenant.ID, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Login failed")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.DomainErrorOrInternal(err, "Login failed")
	}

	s.logger.Info("User logged in",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserDTO(user),
	}, nil
}
