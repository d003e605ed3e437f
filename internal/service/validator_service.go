package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/cache"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

// ValidatorService serves the validator dashboard.
type ValidatorService struct {
	source   ValidatorSource
	fallback ValidatorSource
	cache    *cache.Cache
	cacheTTL time.Duration
	policy   fallbackPolicy
}

// ValidatorDependencies bundles construction inputs for the validator facade.
type ValidatorDependencies struct {
	Source     ValidatorSource
	Fallback   ValidatorSource
	Cache      *cache.Cache
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewValidatorService builds the facade.
func NewValidatorService(deps ValidatorDependencies) *ValidatorService {
	return &ValidatorService{
		source:   deps.Source,
		fallback: deps.Fallback,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		policy: fallbackPolicy{
			domainName: "validators",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

// Validators returns the validator set, cached briefly.
func (s *ValidatorService) Validators(ctx context.Context) ([]domain.Validator, error) {
	const key = "portal:cache:validators:set"
	var cached []domain.Validator
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var fallback func(ctx context.Context) ([]domain.Validator, error)
	if s.fallback != nil {
		fallback = s.fallback.Validators
	}

	validators, err := resolve(ctx, s.policy, s.source.Validators, fallback)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, validators, s.cacheTTL)
	return validators, nil
}

// Validator returns one validator.
func (s *ValidatorService) Validator(ctx context.Context, id string) (*domain.Validator, error) {
	var fallback func(ctx context.Context) (*domain.Validator, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.Validator, error) { return s.fallback.Validator(ctx, id) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.Validator, error) { return s.source.Validator(ctx, id) },
		fallback,
	)
}

// NetworkSummary returns validator-set aggregates, cached briefly.
func (s *ValidatorService) NetworkSummary(ctx context.Context) (*domain.NetworkSummary, error) {
	const key = "portal:cache:validators:summary"
	var cached domain.NetworkSummary
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var fallback func(ctx context.Context) (*domain.NetworkSummary, error)
	if s.fallback != nil {
		fallback = s.fallback.NetworkSummary
	}

	summary, err := resolve(ctx, s.policy, s.source.NetworkSummary, fallback)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, summary, s.cacheTTL)
	return summary, nil
}
