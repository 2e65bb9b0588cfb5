package token

import (
	"context"
	"testing"
	"time"

	"storefront/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSVerifier_RoundTrip(t *testing.T) {
	v := NewHSVerifier("secret", "auth", "storefront")
	id := service.Identity{UserID: uuid.New(), Email: "ana@example.com", Name: "Ana", Role: service.RoleAdmin}

	tok, err := v.SignAccess(id, time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestHSVerifier_Rejects(t *testing.T) {
	v := NewHSVerifier("secret", "auth", "storefront")
	id := service.Identity{UserID: uuid.New(), Role: service.RoleCustomer}

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := NewHSVerifier("other", "auth", "storefront").SignAccess(id, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		tok, err := NewHSVerifier("secret", "auth", "backoffice").SignAccess(id, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewHSVerifier("secret", "auth", "storefront")
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		tok, err := past.SignAccess(id, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestHSVerifier_UnknownRoleIsCustomer(t *testing.T) {
	v := NewHSVerifier("secret", "auth", "storefront")
	tok, err := v.SignAccess(service.Identity{UserID: uuid.New(), Role: "SUPERUSER"}, time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, service.RoleCustomer, got.Role)
}
