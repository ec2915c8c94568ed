package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSupervisor))
	assert.True(t, ValidRole(RoleEmployee))

	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole("MANAGER"))
	assert.False(t, ValidRole(""))
}

func TestAuthorized(t *testing.T) {
	claims := Claims{Role: RoleSupervisor}

	assert.True(t, claims.Authorized(), "empty list means any authenticated caller")
	assert.True(t, claims.Authorized(RoleSupervisor))
	assert.True(t, claims.Authorized(RoleAdmin, RoleSupervisor))
	assert.False(t, claims.Authorized(RoleAdmin))
	assert.False(t, claims.Authorized(RoleAdmin, RoleEmployee))
}

func TestGetClaims(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		want := Claims{UserId: 42, Role: RoleAdmin}
		ctx := context.WithValue(context.Background(), Key, want)

		got, err := GetClaims(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing claims", func(t *testing.T) {
		_, err := GetClaims(context.Background())
		assert.Error(t, err)
	})
}
