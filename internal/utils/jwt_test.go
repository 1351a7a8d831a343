package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestNewAccessTokenCarriesClaims(t *testing.T) {
	at, err := NewAccessToken(testSecret, 42, "STUDENT", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "STUDENT", claims["role"])
	assert.NotZero(t, claims["exp"])
}

func TestSubjectTokenRoundTrip(t *testing.T) {
	at, err := NewSubjectToken(testSecret, "s001", 30)
	require.NoError(t, err)

	sub, err := ParseSubject(testSecret, at.Token)
	require.NoError(t, err)
	assert.Equal(t, "s001", sub)
}

func TestParseSubjectRejectsExpired(t *testing.T) {
	at, err := NewSubjectToken(testSecret, "s001", -1) // already expired
	require.NoError(t, err)

	_, err = ParseSubject(testSecret, at.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSubjectRejectsWrongSecret(t *testing.T) {
	at, err := NewSubjectToken(testSecret, "s001", 30)
	require.NoError(t, err)

	_, err = ParseSubject("other-secret", at.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSubjectRejectsGarbage(t *testing.T) {
	_, err := ParseSubject(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
