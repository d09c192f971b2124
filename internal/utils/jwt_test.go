package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@example.com", "lessor", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "lessor", claims.Role)
	assert.Equal(t, string(AccessToken), claims.Type)

	claims, err = ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, string(RefreshToken), claims.Type)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(1, "user@example.com", "user", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestRefreshExpiresAfterAccess(t *testing.T) {
	pair, err := GenerateTokenPair(1, "user@example.com", "user", testSecret)
	require.NoError(t, err)
	assert.Greater(t, pair.RefreshTokenExpiresAt, pair.AccessTokenExpiresAt)
}
