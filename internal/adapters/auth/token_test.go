package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_Issue(t *testing.T) {
	secret := "test-secret"
	issuer, _ := NewJWTTokens(secret)

	token, err := issuer.Issue(123, "u@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestJWTTokens_Verify(t *testing.T) {
	issuer, verifier := NewJWTTokens("test-secret")

	token, err := issuer.Issue(42, "u@example.com", time.Hour)
	require.NoError(t, err)

	userID, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTTokens_Verify_wrong_secret(t *testing.T) {
	issuer, _ := NewJWTTokens("secret-a")
	_, verifier := NewJWTTokens("secret-b")

	token, err := issuer.Issue(42, "u@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_expired(t *testing.T) {
	issuer, verifier := NewJWTTokens("test-secret")

	token, err := issuer.Issue(42, "u@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_garbage(t *testing.T) {
	_, verifier := NewJWTTokens("test-secret")
	_, err := verifier.Verify("not-a-token")
	assert.Error(t, err)
}
