package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

func testUser() *entity.User {
	return &entity.User{
		ID:    7,
		Email: "user@example.test",
		Roles: entity.Roles{entity.RoleUser, entity.RoleAdmin},
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	svc := NewJWTService("test-secret", 1, nil)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "user@example.test", claims.Email)
	assert.Contains(t, claims.Roles, entity.RoleAdmin)
}

func TestParseTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", 1, nil)
	other := NewJWTService("other-secret", 1, nil)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(context.Background(), token)
	assert.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	svc := NewJWTService("test-secret", 1, nil)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.EqualError(t, err, "token is malformed")
}

func TestParseTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", 1, nil)

	claims := &JWTCustomClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), signed)
	assert.EqualError(t, err, "token is expired")
}
