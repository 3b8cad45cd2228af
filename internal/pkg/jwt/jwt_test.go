package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	employeeID := "emp-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "manager", &employeeID)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	// The verifier handed to the router must accept what we mint.
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "emp-1", claims["employee_id"])
}

func TestGenerateAccessToken_OmitsEmployeeClaimWhenNil(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	tokenString, _, err := svc.GenerateAccessToken("user-2", "admin", nil)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	_, ok := claims["employee_id"]
	assert.False(t, ok)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "manager", nil)
	assert.Error(t, err)
}
