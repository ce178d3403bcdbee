package authUtils

import (
	"testing"

	"campus-sos-be/config"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenClaims(t *testing.T) {
	config.App.JWTSecret = "test-secret"
	config.App.JWTExpiryHours = 2

	signed, err := GenerateToken("64f000000000000000000001", "admin")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.App.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "64f000000000000000000001", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestGenerateTokenRejectedBySecretMismatch(t *testing.T) {
	config.App.JWTSecret = "test-secret"
	config.App.JWTExpiryHours = 2

	signed, err := GenerateToken("64f000000000000000000001", "user")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret"), nil
	})
	assert.Error(t, err)
}
