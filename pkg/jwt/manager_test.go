package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(42, "Editor", []string{"editor"})
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "Editor", claims.Name)
	assert.Equal(t, []string{"editor"}, claims.Roles)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	other := NewManager("other-secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(1, "x", nil)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(1, "x", nil)
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := m.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
