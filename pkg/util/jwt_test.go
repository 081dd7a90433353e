package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		email  string
		role   string
	}{
		{"customer token", 1, "customer@example.com", "customer"},
		{"staff token", 2, "staff@example.com", "staff"},
		{"admin token", 3, "admin@example.com", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := GenerateTokenPair(tt.userID, tt.email, tt.role, testSecret, 15*time.Minute, 7*24*time.Hour)
			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		})
	}
}

func TestValidateToken(t *testing.T) {
	tokens, err := GenerateTokenPair(42, "staff@example.com", "staff", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens, err := GenerateTokenPair(1, "a@example.com", "customer", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	tokens, err := GenerateTokenPair(1, "a@example.com", "customer", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
