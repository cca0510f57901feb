package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenValidator(t *testing.T) {
	t.Parallel()

	validator := NewTokenValidator("s3cret")
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		token   string
		subject string
		wantErr bool
	}{
		{"valid", signToken(t, "s3cret", jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future}), "user-1", false},
		{"expired", signToken(t, "s3cret", jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: past}), "", true},
		{"wrong secret", signToken(t, "other", jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future}), "", true},
		{"wrong algorithm", signToken(t, "s3cret", jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future}), "", true},
		{"no subject", signToken(t, "s3cret", jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: future}), "", true},
		{"garbage", "not.a.token", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := validator.ValidateToken(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subject, claims.Subject)
		})
	}

	assert.False(t, NewTokenValidator("").Enabled())
}
