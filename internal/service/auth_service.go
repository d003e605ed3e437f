package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// AuthService coordinates sign-in and sign-out against the upstream API and
// owns the portal's single session credential.
type AuthService struct {
	client     *upstream.Client
	store      session.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(client *upstream.Client, store session.Store, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{client: client, store: store, dispatcher: dispatcher, logger: logger}
}

// SessionStatus describes the current session for the dashboard shell.
type SessionStatus struct {
	Authenticated bool            `json:"authenticated"`
	Subject       *domain.Subject `json:"subject,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// Login authenticates against the upstream and persists the resulting
// credential. The login call itself carries no bearer header and is exempt
// from the refresh flow.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Credential, error) {
	var grant session.Grant
	resp, err := s.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/api/auth/login",
		Body:     map[string]string{"email": email, "password": password},
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Decode(&grant); err != nil {
		return nil, err
	}
	if grant.Token == "" {
		return nil, apperrors.NewUnauthorized("upstream returned no token")
	}

	cred := session.CredentialFromGrant(grant, "", time.Now())
	if err := s.store.Set(ctx, cred); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventSignedIn,
		SubjectID: optionalID(cred.Subject.ID),
		Payload:   events.SignedInPayload{SubjectName: cred.Subject.Name, Roles: cred.Subject.Roles},
	})
	s.logger.Info("signed in", zap.String("subject", cred.Subject.ID))

	return &cred, nil
}

// Logout revokes the upstream session best-effort and always clears local
// state.
func (s *AuthService) Logout(ctx context.Context) error {
	cred := s.store.Get(ctx)
	if cred == nil {
		return nil
	}

	if _, err := s.client.Do(ctx, upstream.Request{Method: http.MethodPost, Path: "/api/auth/logout"}); err != nil {
		// Local sign-out proceeds regardless of the upstream's answer.
		s.logger.Warn("upstream logout failed", zap.Error(err))
	}

	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventSignedOut,
		SubjectID: optionalID(cred.Subject.ID),
	})
	return nil
}

// Profile returns the signed-in subject.
func (s *AuthService) Profile(ctx context.Context) (*domain.Subject, error) {
	cred := s.store.Get(ctx)
	if cred == nil {
		return nil, apperrors.NewUnauthorized("not signed in")
	}
	subject := cred.Subject
	return &subject, nil
}

// Status reports whether a usable session exists.
func (s *AuthService) Status(ctx context.Context) SessionStatus {
	cred := s.store.Get(ctx)
	if cred == nil {
		return SessionStatus{}
	}
	status := SessionStatus{Authenticated: !cred.Expired(time.Now())}
	subject := cred.Subject
	status.Subject = &subject
	if !cred.ExpiresAt.IsZero() {
		expires := cred.ExpiresAt
		status.ExpiresAt = &expires
	}
	return status
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
