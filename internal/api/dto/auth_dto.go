package dto

import (
	"time"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// LoginRequest payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse standard response for auth endpoints.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Subject       *domain.Subject `json:"subject,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}
