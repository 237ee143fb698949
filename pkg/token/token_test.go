package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	tokenString, err := GenerateJWT(42, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ValidateJWT(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cricboard", claims.Issuer)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(42, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString, "another-secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	tokenString, err := GenerateJWT(42, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateJWTRejectsEmptyInputs(t *testing.T) {
	_, err := ValidateJWT("", testSecret)
	assert.Error(t, err)

	_, err = ValidateJWT("not-empty", "")
	assert.Error(t, err)
}
