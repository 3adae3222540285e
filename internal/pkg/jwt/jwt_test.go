package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	employeeID := "E1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("U1", &employeeID, "manager")
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "U1", claims["user_id"])
	assert.Equal(t, "E1", claims["employee_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("secret", "forever")

	_, _, err := svc.GenerateAccessToken("U1", nil, "employee")
	assert.Error(t, err)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "1h")

	tokenString, expiresIn, err := svc.GenerateSSEToken("E1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	subject, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "E1", subject)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")

	access, _, err := svc.GenerateAccessToken("U1", nil, "employee")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("one", "1h")
	verifier := NewJWTService("two", "1h")

	tokenString, _, err := issuer.GenerateSSEToken("E1")
	require.NoError(t, err)

	_, err = verifier.ValidateSSEToken(tokenString)
	assert.Error(t, err)
}
