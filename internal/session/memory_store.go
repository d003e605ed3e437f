package session

import (
	"context"
	"sync"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// MemoryStore keeps the credential in process memory. Used in tests and in
// deployments without Redis; the session then does not survive restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *domain.Credential
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current credential, or nil when none is stored.
func (s *MemoryStore) Get(_ context.Context) *domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return nil
	}
	copy := *s.cred
	return &copy
}

// IsExpired reports whether the stored credential is absent or past expiry.
func (s *MemoryStore) IsExpired(ctx context.Context) bool {
	return credentialExpired(s.Get(ctx))
}

// Set persists a new credential.
func (s *MemoryStore) Set(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	return nil
}

// Clear removes the credential.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
