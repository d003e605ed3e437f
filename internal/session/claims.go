package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// tokenClaims mirrors the upstream access token payload. The portal holds no
// upstream signing key, so claims are read with an unverified parse and used
// only for expiry bookkeeping and display, never for authorization decisions.
type tokenClaims struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func parseClaims(token string) (*tokenClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// expiryFromToken recovers the exp claim from an upstream access token.
func expiryFromToken(token string) (time.Time, bool) {
	claims, ok := parseClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// subjectFromToken recovers subject identity from an upstream access token.
func subjectFromToken(token string) (domain.Subject, bool) {
	claims, ok := parseClaims(token)
	if !ok || claims.Subject == "" {
		return domain.Subject{}, false
	}
	return domain.Subject{
		ID:    claims.Subject,
		Name:  claims.Name,
		Roles: claims.Roles,
	}, true
}
