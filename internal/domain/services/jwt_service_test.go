package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithCorrectPassword(t *testing.T) {
	svc := NewJWTService(testConfig())

	result, err := svc.Login("admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.Role)

	// 发放的令牌可以通过校验且带admin角色
	token, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginWithWrongPassword(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.Login("wrong-password")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc := NewJWTService(testConfig())

	other := testConfig()
	other.JWTSecretKey = "different-secret"
	otherSvc := NewJWTService(other)

	token, err := otherSvc.GenerateToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
