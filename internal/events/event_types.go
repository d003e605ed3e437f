package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventTokenRefreshed EventType = "token_refreshed"
	EventSignedOut      EventType = "signed_out"
	EventSessionExpired EventType = "session_expired"
	EventFallbackServed EventType = "fallback_served"
)

// Event represents a session or data-source event emitted by the portal.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID *string     `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionExpiredPayload payload.
type SessionExpiredPayload struct {
	Reason string `json:"reason"`
	Path   string `json:"path,omitempty"`
}

// SignedInPayload payload.
type SignedInPayload struct {
	SubjectName string   `json:"subject_name"`
	Roles       []string `json:"roles"`
}

// TokenRefreshedPayload payload.
type TokenRefreshedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// FallbackServedPayload payload.
type FallbackServedPayload struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}
