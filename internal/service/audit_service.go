package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/repository"
)

// AuditService records session and data-source events into the audit trail.
type AuditService struct {
	repo       repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service. A nil repository disables persistence
// while keeping subscriptions harmless.
func NewAuditService(repo repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSignedIn, a.record)
	a.dispatcher.Subscribe(events.EventSignedOut, a.record)
	a.dispatcher.Subscribe(events.EventTokenRefreshed, a.record)
	a.dispatcher.Subscribe(events.EventSessionExpired, a.record)
	a.dispatcher.Subscribe(events.EventFallbackServed, a.record)
}

// ListRecent returns the newest audit entries.
func (a *AuditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if a.repo == nil {
		return []domain.AuditEvent{}, nil
	}
	return a.repo.ListRecent(ctx, limit)
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	if a.repo == nil {
		return nil
	}

	entry := domain.AuditEvent{
		EventType: string(event.Type),
		SubjectID: event.SubjectID,
		Detail:    payloadDetail(event.Payload),
	}
	if err := a.repo.Create(ctx, &entry); err != nil {
		// Auditing must never break the flow that triggered the event.
		a.logger.Warn("audit record failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

func payloadDetail(payload interface{}) map[string]interface{} {
	switch p := payload.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return p
	case events.SessionExpiredPayload:
		return map[string]interface{}{"reason": p.Reason, "path": p.Path}
	case events.SignedInPayload:
		return map[string]interface{}{"subject_name": p.SubjectName, "roles": p.Roles}
	case events.TokenRefreshedPayload:
		return map[string]interface{}{"expires_at": p.ExpiresAt}
	case events.FallbackServedPayload:
		return map[string]interface{}{"domain": p.Domain, "reason": p.Reason}
	default:
		return map[string]interface{}{"payload": p}
	}
}
