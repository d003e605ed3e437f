package session

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestCredentialFromGrantUsesExpiresIn(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	expires := int64(900)

	cred := CredentialFromGrant(Grant{
		Token:        "tok-1",
		RefreshToken: "refresh-1",
		User:         domain.Subject{ID: "user-1", Name: "Ada"},
		ExpiresIn:    &expires,
	}, "", now)

	assert.Equal(t, "tok-1", cred.AccessToken)
	assert.Equal(t, "refresh-1", cred.RefreshToken)
	assert.Equal(t, now.Add(15*time.Minute), cred.ExpiresAt)
	assert.False(t, cred.Expired(now))
	assert.True(t, cred.Expired(now.Add(16*time.Minute)))
}

func TestCredentialFromGrantZeroExpiresInMeansExpired(t *testing.T) {
	now := time.Now()
	expires := int64(0)

	cred := CredentialFromGrant(Grant{Token: "tok-1", ExpiresIn: &expires}, "", now)

	// An explicit zero lifetime is not the same as an absent one.
	assert.True(t, cred.Expired(now))
}

func TestCredentialFromGrantFallsBackToTokenExpiry(t *testing.T) {
	now := time.Now()
	exp := now.Add(30 * time.Minute).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

	cred := CredentialFromGrant(Grant{Token: token}, "", now)

	assert.Equal(t, exp.Unix(), cred.ExpiresAt.Unix())
}

func TestCredentialFromGrantWithoutExpiryNeverExpires(t *testing.T) {
	now := time.Now()

	cred := CredentialFromGrant(Grant{Token: "opaque-token"}, "", now)

	assert.True(t, cred.ExpiresAt.IsZero())
	assert.False(t, cred.Expired(now.Add(24*time.Hour)))
}

func TestCredentialFromGrantKeepsPreviousRefreshToken(t *testing.T) {
	cred := CredentialFromGrant(Grant{Token: "tok-2"}, "refresh-kept", time.Now())

	assert.Equal(t, "refresh-kept", cred.RefreshToken)
}

func TestCredentialFromGrantRecoversSubjectFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":   "user-9",
		"name":  "Grace",
		"roles": []string{"admin"},
	})

	cred := CredentialFromGrant(Grant{Token: token}, "", time.Now())

	assert.Equal(t, "user-9", cred.Subject.ID)
	assert.Equal(t, "Grace", cred.Subject.Name)
	assert.Equal(t, []string{"admin"}, cred.Subject.Roles)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.Nil(t, store.Get(ctx))
	assert.True(t, store.IsExpired(ctx))

	cred := domain.Credential{
		AccessToken:  "tok-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour),
		Subject:      domain.Subject{ID: "user-1"},
	}
	require.NoError(t, store.Set(ctx, cred))

	got := store.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, cred.AccessToken, got.AccessToken)
	assert.False(t, store.IsExpired(ctx))

	// Mutating the returned copy must not affect the stored credential.
	got.AccessToken = "mutated"
	assert.Equal(t, "tok-1", store.Get(ctx).AccessToken)

	require.NoError(t, store.Clear(ctx))
	assert.Nil(t, store.Get(ctx))
	assert.True(t, store.IsExpired(ctx))
}

func TestMemoryStoreExpiredCredential(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, domain.Credential{
		AccessToken: "tok-1",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}))

	assert.NotNil(t, store.Get(ctx), "expired credentials stay readable")
	assert.True(t, store.IsExpired(ctx))
}
