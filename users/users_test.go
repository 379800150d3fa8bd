package users_test

import (
	"testing"

	"github.com/jrsteele09/go-contacts-server/users"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := users.HashPassword("password123", 10)
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, users.CheckPasswordHash("password123", hash))
	require.False(t, users.CheckPasswordHash("password124", hash))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := users.HashPassword("password123", 10)
	require.NoError(t, err)
	second, err := users.HashPassword("password123", 10)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHashPassword_EnforcesMinimumCost(t *testing.T) {
	hash, err := users.HashPassword("password123", 1)
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("password123", hash))
}
