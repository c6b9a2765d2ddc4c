package auth

import (
	"testing"
	"time"

	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestResolveIdentityRoundtrip(t *testing.T) {
	user := &models.User{
		ID:      42,
		Email:   "jane@shop.test",
		IsAdmin: true,
	}

	token, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	ident := ResolveIdentity(testSecret, token)
	require.NotNil(t, ident)
	assert.Equal(t, uint(42), ident.UserID)
	assert.Equal(t, "jane@shop.test", ident.Email)
	assert.True(t, ident.IsAdmin)
}

func TestResolveIdentityInvalidTokens(t *testing.T) {
	user := &models.User{ID: 1, Email: "jane@shop.test"}
	token, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	assert.Nil(t, ResolveIdentity(testSecret, ""), "empty token")
	assert.Nil(t, ResolveIdentity(testSecret, "not-a-jwt"), "garbage token")
	assert.Nil(t, ResolveIdentity("another-secret-another-secret-12", token), "wrong secret")
}

func TestResolveIdentityExpiredToken(t *testing.T) {
	claims := &JWTCustomClaims{
		UserID: 1,
		Email:  "jane@shop.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Nil(t, ResolveIdentity(testSecret, token))
}

func TestResolveIdentityRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not resolve
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTCustomClaims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, ResolveIdentity(testSecret, token))
}
