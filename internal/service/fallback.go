package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

// fallbackPolicy carries the shared wiring for sample-data substitution.
type fallbackPolicy struct {
	domainName string
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// resolve runs primary and, when it fails with a substitutable error and a
// fallback is configured, serves the fallback instead. Session expiry is
// never substituted.
func resolve[T any](ctx context.Context, p fallbackPolicy, primary, fallback func(ctx context.Context) (T, error)) (T, error) {
	out, err := primary(ctx)
	if err == nil || fallback == nil || !canFallBack(err) {
		return out, err
	}

	p.logger.Warn("serving sample fallback",
		zap.String("domain", p.domainName),
		zap.Error(err))
	p.metrics.RecordFallback(p.domainName)
	_ = p.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventFallbackServed,
		Payload: events.FallbackServedPayload{Domain: p.domainName, Reason: err.Error()},
	})

	return fallback(ctx)
}
