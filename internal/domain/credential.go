package domain

import "time"

// Subject identifies the upstream account the portal session belongs to.
type Subject struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Credential is the access/refresh token pair and associated subject identity
// held for the single current upstream session.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Subject      Subject
}

// Expired reports whether the credential carries an expiry in the past.
// A zero ExpiresAt means the credential never expires by this check.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// HasRole reports whether the subject carries the given role.
func (s Subject) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
