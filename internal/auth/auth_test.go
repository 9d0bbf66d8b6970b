package auth_test

import (
	"testing"

	"github.com/auklet-oj/auklet/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := auth.GenerateJWT("user-123", true, "secret", 1)
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.True(t, claims.Admin)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := auth.GenerateJWT("user-123", false, "secret", 1)
	require.NoError(t, err)

	_, err = auth.ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := auth.ValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPasswordHash("hunter2", hash))
	assert.False(t, auth.CheckPasswordHash("hunter3", hash))
}
