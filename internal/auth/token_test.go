package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/adept-content/internal/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier(secret, "adept")

	tok, err := v.Issue("admin@example.com", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity("admin@example.com"), id)
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier(secret, "adept")
	past := NewVerifier(secret, "adept")
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	expired, err := past.Issue("admin", time.Hour)
	require.NoError(t, err)

	otherKey, err := NewVerifier("ffffffffffffffffffffffffffffffff", "adept").Issue("admin", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewVerifier(secret, "someone-else").Issue("admin", time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue("  ", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin", Issuer: "adept"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"no subject":   noSubject,
		"no expiry":    noExpiry,
		"garbage":      "not.a.token",
	} {
		_, err := v.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, name)
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, ok = BearerToken("bearer   xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer ", "Basic abc"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IdentityFrom(ctx).Valid())

	ctx = WithIdentity(ctx, "editor")
	assert.Equal(t, domain.Identity("editor"), IdentityFrom(ctx))
}
