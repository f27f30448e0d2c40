package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := GenerateAccessToken("user-1", "customer")
	require.NoError(t, err)

	claims, err := ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	signed, err := GenerateAccessToken("user-1", "customer")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ParseAccessToken(signed)
	assert.Error(t, err)
}

func TestAccessTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
}

func TestRefreshTokenCarriesUniqueJTI(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signedA, idA, expiresA, err := GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, idB, _, err := GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, idA, idB)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), expiresA, time.Minute)

	claims, err := ParseRefreshToken(signedA)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, idA, claims.ID)
}

func TestRefreshTokenUsesSeparateSecretWhenSet(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	signed, _, _, err := GenerateRefreshToken("user-1")
	require.NoError(t, err)

	// The refresh token must not validate as an access token.
	_, err = ParseAccessToken(signed)
	assert.Error(t, err)

	_, err = ParseRefreshToken(signed)
	assert.NoError(t, err)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "shared-secret")
	t.Setenv("JWT_REFRESH_SECRET", "")

	// With a shared secret an access token still fails refresh parsing
	// because it has no jti.
	signed, err := GenerateAccessToken("user-1", "customer")
	require.NoError(t, err)

	_, err = ParseRefreshToken(signed)
	assert.Error(t, err)
}
