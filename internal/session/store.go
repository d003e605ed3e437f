// Package session holds the portal's single upstream session: the
// access/refresh token pair, the subject profile, and the expiry timestamp.
package session

import (
	"context"
	"time"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// Store is the durable holder of the current credential. Implementations must
// treat storage unavailability as "absent" on reads rather than surfacing the
// failure to callers.
type Store interface {
	// Get returns the current credential, or nil when none is stored.
	Get(ctx context.Context) *domain.Credential
	// IsExpired reports true when no credential is stored or when a stored
	// expiry is not in the future.
	IsExpired(ctx context.Context) bool
	// Set persists a new credential, replacing any previous one.
	Set(ctx context.Context, cred domain.Credential) error
	// Clear removes the credential entirely.
	Clear(ctx context.Context) error
}

// Grant is the token payload the upstream returns on login and refresh.
type Grant struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	User         domain.Subject `json:"user"`
	ExpiresIn    *int64         `json:"expiresIn,omitempty"`
}

// CredentialFromGrant shapes a grant into a credential. When the grant omits
// expiresIn, the expiry is recovered from the access token's exp claim; when
// that also fails the credential carries no expiry. A grant without a refresh
// token keeps the previous one so the session stays refreshable.
func CredentialFromGrant(grant Grant, previousRefresh string, now time.Time) domain.Credential {
	cred := domain.Credential{
		AccessToken:  grant.Token,
		RefreshToken: grant.RefreshToken,
		Subject:      grant.User,
	}
	if cred.RefreshToken == "" {
		cred.RefreshToken = previousRefresh
	}

	switch {
	case grant.ExpiresIn != nil:
		cred.ExpiresAt = now.Add(time.Duration(*grant.ExpiresIn) * time.Second)
	default:
		if exp, ok := expiryFromToken(grant.Token); ok {
			cred.ExpiresAt = exp
		}
	}

	if cred.Subject.ID == "" {
		if sub, ok := subjectFromToken(grant.Token); ok {
			cred.Subject = sub
		}
	}

	return cred
}

func credentialExpired(cred *domain.Credential) bool {
	if cred == nil {
		return true
	}
	return cred.Expired(time.Now())
}
