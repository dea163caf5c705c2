package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "cashier1", "cashier", []string{"manage-orders"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "cashier1", claims.Username)
	assert.True(t, claims.HasPermission("manage-orders"))
	assert.False(t, claims.HasPermission("view-dashboard"))
}

func TestJWTRejectsOtherSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour).GenerateAccessToken(uuid.New(), "u", "admin", nil)
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
