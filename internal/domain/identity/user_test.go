package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates user successfully", func(t *testing.T) {
		user, err := NewUser(tenantID, "Jo@Acme.Test", "Jo", "hash", UserRoleMember)

		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "jo@acme.test", user.Email)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		user, err := NewUser(tenantID, "not-an-email", "Jo", "hash", UserRoleMember)
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with empty password hash", func(t *testing.T) {
		user, err := NewUser(tenantID, "jo@acme.test", "Jo", "", UserRoleMember)
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		user, err := NewUser(tenantID, "jo@acme.test", "Jo", "hash", UserRole("superuser"))
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUser_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("activate and deactivate", func(t *testing.T) {
		user, _ := NewUser(tenantID, "jo@acme.test", "Jo", "hash", UserRoleMember)

		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive())

		require.NoError(t, user.Deactivate())
		assert.False(t, user.IsActive())
	})

	t.Run("update changes profile and raises event", func(t *testing.T) {
		user, _ := NewUser(tenantID, "jo@acme.test", "Jo", "hash", UserRoleMember)
		user.ClearDomainEvents()

		require.NoError(t, user.Update("Josephine", UserRoleAdmin))

		assert.Equal(t, "Josephine", user.DisplayName)
		assert.Equal(t, UserRoleAdmin, user.Role)
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("record login raises no event", func(t *testing.T) {
		user, _ := NewUser(tenantID, "jo@acme.test", "Jo", "hash", UserRoleMember)
		user.ClearDomainEvents()

		at := time.Now()
		user.RecordLogin(at)

		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, at, *user.LastLoginAt)
		assert.Empty(t, user.GetDomainEvents())
	})
}

func TestUser_SnapshotRoundTrip(t *testing.T) {
	user, err := NewUser(uuid.New(), "jo@acme.test", "Jo", "hash", UserRoleOwner)
	require.NoError(t, err)
	require.NoError(t, user.Activate())

	rebuilt := UserFromSnapshot(user.ToSnapshot())

	assert.Equal(t, user.ToSnapshot(), rebuilt.ToSnapshot())
	assert.Empty(t, rebuilt.GetDomainEvents())
}

func TestUserView_Update(t *testing.T) {
	user, err := NewUser(uuid.New(), "jo@acme.test", "Jo", "hash", UserRoleMember)
	require.NoError(t, err)
	view := NewUserView(user.ToSnapshot())

	status := UserStatusActive
	name := "Josephine"
	view.Update(UserViewPatch{Status: &status, DisplayName: &name})

	assert.Equal(t, UserStatusActive, view.Status)
	assert.Equal(t, "Josephine", view.DisplayName)
	assert.Equal(t, "jo@acme.test", view.Email)
}

func TestUser_PasswordLifecycle(t *testing.T) {
	t.Run("hash and verify", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery")
		require.NoError(t, err)

		user, err := NewUser(uuid.New(), "jo@acme.test", "Jo", hash, UserRoleMember)
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("correct horse battery"))
		assert.False(t, user.VerifyPassword("wrong password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short")
		require.Error(t, err)
	})

	t.Run("change password raises no event", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery")
		require.NoError(t, err)
		user, err := NewUser(uuid.New(), "jo@acme.test", "Jo", hash, UserRoleMember)
		require.NoError(t, err)
		user.ClearDomainEvents()

		require.NoError(t, user.ChangePassword("an even longer passphrase"))

		assert.True(t, user.VerifyPassword("an even longer passphrase"))
		assert.Empty(t, user.GetDomainEvents())
	})
}
