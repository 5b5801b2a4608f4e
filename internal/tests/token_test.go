package tests

import (
	"testing"
	"time"

	"eats-backend/internal/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	signer := token.NewSigner("test-secret", 0)

	signed, err := signer.Sign(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := signer.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestSigner_RejectsWrongSecret(t *testing.T) {
	signed, err := token.NewSigner("secret-a", 0).Sign(42)
	require.NoError(t, err)

	_, err = token.NewSigner("secret-b", 0).Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestSigner_RejectsGarbage(t *testing.T) {
	_, err := token.NewSigner("test-secret", 0).Verify("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestSigner_RejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"id":  42,
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = token.NewSigner("test-secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
