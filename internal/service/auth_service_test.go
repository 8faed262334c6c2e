package service

import (
	"errors"
	"testing"
	"time"

	"studyhub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "test-secret-key", AccessTokenTTL: time.Hour, Issuer: "studyhub"})
	require.NoError(t, err)

	token, err := svc.IssueToken("U1", "ada")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.Subject)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "studyhub", claims.Issuer)
}

func TestAuthService_RejectsForeignAndExpiredTokens(t *testing.T) {
	issuer, err := NewAuthService(config.JWTConfig{SecretKey: "one", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	verifier, err := NewAuthService(config.JWTConfig{SecretKey: "two", AccessTokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := issuer.IssueToken("U1", "ada")
	require.NoError(t, err)
	_, err = verifier.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidJWTToken))

	expiring := issuer.(*authServiceImpl)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expiring.IssueToken("U1", "ada")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(old)
	assert.True(t, errors.Is(err, ErrInvalidJWTToken))

	_, err = issuer.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_GeneratesSecretWhenUnset(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{})
	require.NoError(t, err)

	token, err := svc.IssueToken("U1", "")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.Subject)
	assert.Equal(t, defaultAccessTokenTTL, svc.(*authServiceImpl).ttl)
}
