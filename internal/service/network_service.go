package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/sample"
)

// NetworkService serves the network-configuration demo.
type NetworkService struct {
	source   NetworkSource
	fallback NetworkSource
	policy   fallbackPolicy
}

// NetworkDependencies bundles construction inputs.
type NetworkDependencies struct {
	Source     NetworkSource
	Fallback   NetworkSource
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewNetworkService builds the facade.
func NewNetworkService(deps NetworkDependencies) *NetworkService {
	return &NetworkService{
		source:   deps.Source,
		fallback: deps.Fallback,
		policy: fallbackPolicy{
			domainName: "network",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

// Profiles returns all configuration profiles with derived parameters filled in.
func (s *NetworkService) Profiles(ctx context.Context) ([]domain.NetworkProfile, error) {
	var fallback func(ctx context.Context) ([]domain.NetworkProfile, error)
	if s.fallback != nil {
		fallback = s.fallback.Profiles
	}
	profiles, err := resolve(ctx, s.policy, s.source.Profiles, fallback)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i] = sample.DeriveProfile(profiles[i])
	}
	return profiles, nil
}

// Profile returns one configuration profile with derived parameters filled in.
func (s *NetworkService) Profile(ctx context.Context, id string) (*domain.NetworkProfile, error) {
	var fallback func(ctx context.Context) (*domain.NetworkProfile, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.NetworkProfile, error) { return s.fallback.Profile(ctx, id) }
	}
	profile, err := resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.NetworkProfile, error) { return s.source.Profile(ctx, id) },
		fallback,
	)
	if err != nil {
		return nil, err
	}
	derived := sample.DeriveProfile(*profile)
	return &derived, nil
}
