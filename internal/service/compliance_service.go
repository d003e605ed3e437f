package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

// ComplianceService serves the compliance panel.
type ComplianceService struct {
	source   ComplianceSource
	fallback ComplianceSource
	policy   fallbackPolicy
}

// ComplianceDependencies bundles construction inputs.
type ComplianceDependencies struct {
	Source     ComplianceSource
	Fallback   ComplianceSource
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewComplianceService builds the facade.
func NewComplianceService(deps ComplianceDependencies) *ComplianceService {
	return &ComplianceService{
		source:   deps.Source,
		fallback: deps.Fallback,
		policy: fallbackPolicy{
			domainName: "compliance",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

// Checks returns the compliance panel rows.
func (s *ComplianceService) Checks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	var fallback func(ctx context.Context) ([]domain.ComplianceCheck, error)
	if s.fallback != nil {
		fallback = s.fallback.Checks
	}
	return resolve(ctx, s.policy, s.source.Checks, fallback)
}

// Summary returns compliance counts.
func (s *ComplianceService) Summary(ctx context.Context) (*domain.ComplianceSummary, error) {
	var fallback func(ctx context.Context) (*domain.ComplianceSummary, error)
	if s.fallback != nil {
		fallback = s.fallback.Summary
	}
	return resolve(ctx, s.policy, s.source.Summary, fallback)
}

// Acknowledge marks a flagged check as acknowledged. Writes always go to the
// configured source and are never substituted with sample data.
func (s *ComplianceService) Acknowledge(ctx context.Context, checkID string) (*domain.ComplianceCheck, error) {
	return s.source.Acknowledge(ctx, checkID)
}
