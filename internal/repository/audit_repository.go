package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// AuditRepository defines persistence access for the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, event *domain.AuditEvent) error {
	const query = `
        INSERT INTO audit_events (event_type, subject_id, detail)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, query,
		event.EventType,
		event.SubjectID,
		detail,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
        SELECT id, event_type, subject_id, detail, created_at
        FROM audit_events
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.AuditEvent, 0, limit)
	for rows.Next() {
		var event domain.AuditEvent
		var detail []byte
		if err := rows.Scan(&event.ID, &event.EventType, &event.SubjectID, &detail, &event.CreatedAt); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &event.Detail); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
