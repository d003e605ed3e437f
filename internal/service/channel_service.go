package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

// ChannelService serves the data-channels view.
type ChannelService struct {
	source   ChannelSource
	fallback ChannelSource
	policy   fallbackPolicy
}

// ChannelDependencies bundles construction inputs.
type ChannelDependencies struct {
	Source     ChannelSource
	Fallback   ChannelSource
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewChannelService builds the facade.
func NewChannelService(deps ChannelDependencies) *ChannelService {
	return &ChannelService{
		source:   deps.Source,
		fallback: deps.Fallback,
		policy: fallbackPolicy{
			domainName: "channels",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

// Channels returns the data channels.
func (s *ChannelService) Channels(ctx context.Context) ([]domain.Channel, error) {
	var fallback func(ctx context.Context) ([]domain.Channel, error)
	if s.fallback != nil {
		fallback = s.fallback.Channels
	}
	return resolve(ctx, s.policy, s.source.Channels, fallback)
}
