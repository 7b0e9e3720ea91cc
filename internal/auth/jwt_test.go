package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "standards-board", time.Hour)

	token, issued, err := m.GenerateToken("google-123")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "google-123", claims.Subject)
	assert.Equal(t, "standards-board", claims.Issuer)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	_, second, err := m.GenerateToken("google-123")
	require.NoError(t, err)
	assert.NotEqual(t, issued.ID, second.ID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", "standards-board", time.Hour)

	expired := NewJWTManager("secret", "standards-board", time.Hour)
	expired.ttl = -time.Minute
	token, _, err := expired.GenerateToken("u1")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other := NewJWTManager("secret", "someone-else", time.Hour)
	token, _, err = other.GenerateToken("u1")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	forged := NewJWTManager("not-the-secret", "standards-board", time.Hour)
	token, _, err = forged.GenerateToken("u1")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.Error(t, err)

	_, err = m.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewJWTManager("s", "i", 0).ttl)
}
