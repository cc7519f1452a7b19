package jwt

import (
	"testing"
	"time"

	"contactbook/backend/internal/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(42, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := gojwt.Parse(tokenString, func(token *gojwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "jane@example.com", claims["email"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	expected := time.Now().Add(24 * time.Hour).Unix()
	assert.InDelta(t, expected, exp, 60, "token expires in 24 hours")
}

func TestGenerateToken_RejectedWithWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(42, "jane@example.com")
	require.NoError(t, err)

	_, err = gojwt.Parse(tokenString, func(token *gojwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
