package domain

import "time"

// AuditEvent records a session or fallback occurrence for the compliance trail.
type AuditEvent struct {
	ID        string
	EventType string
	SubjectID *string
	Detail    map[string]any
	CreatedAt time.Time
}
