package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptdeck/backend/internal/infrastructure/auth"
	"github.com/promptdeck/backend/internal/infrastructure/config"
)

func newAuthFixture(t *testing.T) (*identityFixture, *AuthService) {
	t.Helper()
	f := newIdentityFixture()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "promptdeck-test",
	})
	svc := NewAuthService(f.tenantRepo, f.userRepo, jwtService, zap.NewNop())
	return f, svc
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*identityFixture, *AuthService) {
		f, svc := newAuthFixture(t)
		_, err := f.tenants.Create(ctx, CreateTenantInput{Code: "acme", Name: "Acme Inc"})
		require.NoError(t, err)
		tenant, err := f.tenantRepo.FindByCode(ctx, "ACME")
		require.NoError(t, err)
		_, err = f.users.Create(ctx, tenant.ID, CreateUserInput{
			Email:       "jan@example.com",
			DisplayName: "Jan",
			Password:    "correct horse battery",
			Role:        "admin",
		})
		require.NoError(t, err)
		return f, svc
	}

	t.Run("issues token on valid credentials", func(t *testing.T) {
		f, svc := setup(t)

		result, err := svc.Login(ctx, LoginInput{
			TenantCode: "acme",
			Email:      "jan@example.com",
			Password:   "correct horse battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "jan@example.com", result.User.Email)
		require.NotNil(t, result.User.LastLoginAt)

		// Last login is persisted on the write side.
		user, err := f.userRepo.FindByEmail(ctx, result.User.TenantID, "jan@example.com")
		require.NoError(t, err)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Login(ctx, LoginInput{
			TenantCode: "acme",
			Email:      "jan@example.com",
			Password:   "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown tenant and unknown email look the same", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Login(ctx, LoginInput{TenantCode: "nope", Email: "jan@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, LoginInput{TenantCode: "acme", Email: "nobody@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended tenant blocks login", func(t *testing.T) {
		f, svc := setup(t)

		tenant, err := f.tenantRepo.FindByCode(ctx, "ACME")
		require.NoError(t, err)
		_, err = f.tenants.Suspend(ctx, tenant.ID)
		require.NoError(t, err)

		_, err = svc.Login(ctx, LoginInput{
			TenantCode: "acme",
			Email:      "jan@example.com",
			Password:   "correct horse battery",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated user blocks login", func(t *testing.T) {
		f, svc := setup(t)

		tenant, err := f.tenantRepo.FindByCode(ctx, "ACME")
		require.NoError(t, err)
		user, err := f.userRepo.FindByEmail(ctx, tenant.ID, "jan@example.com")
		require.NoError(t, err)
		_, err = f.users.Deactivate(ctx, tenant.ID, user.ID)
		require.NoError(t, err)

		_, err = svc.Login(ctx, LoginInput{
			TenantCode: "acme",
			Email:      "jan@example.com",
			Password:   "correct horse battery",
		})
		require.Error(t, err)
	})
}
