package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

const defaultIssuanceLimit = 25

// TokenizationService serves the tokenization registry panels.
type TokenizationService struct {
	source   TokenizationSource
	fallback TokenizationSource
	policy   fallbackPolicy
}

// TokenizationDependencies bundles construction inputs.
type TokenizationDependencies struct {
	Source     TokenizationSource
	Fallback   TokenizationSource
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewTokenizationService builds the facade.
func NewTokenizationService(deps TokenizationDependencies) *TokenizationService {
	return &TokenizationService{
		source:   deps.Source,
		fallback: deps.Fallback,
		policy: fallbackPolicy{
			domainName: "tokenization",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

// Assets returns the registered token assets.
func (s *TokenizationService) Assets(ctx context.Context) ([]domain.TokenAsset, error) {
	var fallback func(ctx context.Context) ([]domain.TokenAsset, error)
	if s.fallback != nil {
		fallback = s.fallback.Assets
	}
	return resolve(ctx, s.policy, s.source.Assets, fallback)
}

// Asset returns one registered asset.
func (s *TokenizationService) Asset(ctx context.Context, id string) (*domain.TokenAsset, error) {
	var fallback func(ctx context.Context) (*domain.TokenAsset, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.TokenAsset, error) { return s.fallback.Asset(ctx, id) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.TokenAsset, error) { return s.source.Asset(ctx, id) },
		fallback,
	)
}

// Issuances returns the issuance history for an asset.
func (s *TokenizationService) Issuances(ctx context.Context, assetID string, limit int) ([]domain.IssuanceRecord, error) {
	limit = clampLimit(limit, defaultIssuanceLimit)

	var fallback func(ctx context.Context) ([]domain.IssuanceRecord, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) ([]domain.IssuanceRecord, error) {
			return s.fallback.Issuances(ctx, assetID, limit)
		}
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) ([]domain.IssuanceRecord, error) { return s.source.Issuances(ctx, assetID, limit) },
		fallback,
	)
}
