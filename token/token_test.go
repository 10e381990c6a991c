package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/billing-console/token"
	"github.com/stretchr/testify/require"
)

func TestHMACSigner(t *testing.T) {
	_, err := token.NewHMACSigner("short")
	require.Error(t, err)

	signer, err := token.NewHMACSigner("0123456789abcdef0123")
	require.NoError(t, err)
	require.Equal(t, jwt.SigningMethodHS256, signer.GetSigningMethod())

	raw, err := signer.Sign(jwt.RegisteredClaims{Subject: "u1"})
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, signer.GetVerificationKey)
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "u1", sub)

	other, err := token.NewHMACSigner("another-secret-of-length")
	require.NoError(t, err)
	_, err = jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, other.GetVerificationKey)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestRevokedTokenCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := token.NewInMemoryRevokedTokenCache(func() time.Time { return now })

	cache.Add("", now.Add(time.Hour))
	cache.Add("a", now.Add(time.Hour))
	cache.Add("b", now.Add(-time.Minute))

	require.True(t, cache.IsRevoked("a"))
	require.True(t, cache.IsRevoked("b"))
	require.False(t, cache.IsRevoked(""))

	cache.Cleanup()
	require.True(t, cache.IsRevoked("a"))
	require.False(t, cache.IsRevoked("b"))
}
