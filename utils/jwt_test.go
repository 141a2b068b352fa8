package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(7, "staff", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	good, err := GenerateToken(7, "customer", "s3cret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(7, "customer", "s3cret", -time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateToken(0, "customer", "s3cret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name, token, secret string
	}{
		{"wrong secret", good, "other"},
		{"expired", expired, "s3cret"},
		{"no user", anonymous, "s3cret"},
		{"garbage", "not.a.jwt", "s3cret"},
	}
	for _, tt := range tests {
		_, err := ParseToken(tt.token, tt.secret)
		assert.ErrorIs(t, err, ErrInvalidToken, tt.name)
	}
}
