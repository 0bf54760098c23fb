package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(issuer string) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: issuer,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService("carnet.test")

	token, expiresAt, err := svc.GenerateToken("STAFF", "bienestar@upac.edu.co", "Carlos Mejía", "session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "STAFF", claims.Role)
	assert.Equal(t, "bienestar@upac.edu.co", claims.Identifier)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "carnet.test", claims.Issuer)
}

func TestValidateTokenRejectsForeignIssuer(t *testing.T) {
	// Same signing key, different issuer: the token must not validate even
	// though the signature checks out.
	minter := newTestJWTService("somewhere.else")
	validator := newTestJWTService("carnet.test")

	token, _, err := minter.GenerateToken("STUDENT", "12300298", "Laura Quintero", "session-1")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	minter := newTestJWTService("carnet.test")
	validator := NewJWTService(JWTConfig{
		SecretKey:   "another-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "carnet.test",
	})

	token, _, err := minter.GenerateToken("STUDENT", "12300298", "Laura Quintero", "session-1")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  -time.Hour,
		TokenIssuer: "carnet.test",
	})

	token, _, err := svc.GenerateToken("STUDENT", "12300298", "Laura Quintero", "session-1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
