package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/sample"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
)

// failingComplianceSource simulates an unreachable upstream.
type failingComplianceSource struct {
	acknowledgeCalls int
}

func (f *failingComplianceSource) Checks(context.Context) ([]domain.ComplianceCheck, error) {
	return nil, &upstream.Error{Kind: upstream.KindTransport, Message: "connection refused"}
}

func (f *failingComplianceSource) Summary(context.Context) (*domain.ComplianceSummary, error) {
	return nil, &upstream.Error{Kind: upstream.KindTransport, Message: "connection refused"}
}

func (f *failingComplianceSource) Acknowledge(context.Context, string) (*domain.ComplianceCheck, error) {
	f.acknowledgeCalls++
	return nil, &upstream.Error{Kind: upstream.KindTransport, Message: "connection refused"}
}

func newComplianceService(source, fallback ComplianceSource) *ComplianceService {
	return NewComplianceService(ComplianceDependencies{
		Source:     source,
		Fallback:   fallback,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
}

func TestComplianceChecksFallBackToSamples(t *testing.T) {
	svc := newComplianceService(&failingComplianceSource{}, NewSampleSource(sample.NewGenerator(42)))

	checks, err := svc.Checks(context.Background())

	require.NoError(t, err)
	assert.Len(t, checks, 20)
}

func TestComplianceSummaryCountsAllStatuses(t *testing.T) {
	sampleSource := NewSampleSource(sample.NewGenerator(42))
	svc := newComplianceService(sampleSource, nil)

	checks, err := svc.Checks(context.Background())
	require.NoError(t, err)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(checks), summary.Passed+summary.Flagged+summary.Acknowledged)
}

func TestAcknowledgeNeverServedFromFallback(t *testing.T) {
	failing := &failingComplianceSource{}
	svc := newComplianceService(failing, NewSampleSource(sample.NewGenerator(42)))

	_, err := svc.Acknowledge(context.Background(), "check-001")

	require.Error(t, err, "a failed write must not be answered with sample data")
	assert.Equal(t, 1, failing.acknowledgeCalls)
}

func TestSampleAcknowledgeMarksCheck(t *testing.T) {
	svc := newComplianceService(NewSampleSource(sample.NewGenerator(42)), nil)

	check, err := svc.Acknowledge(context.Background(), "check-001")

	require.NoError(t, err)
	assert.Equal(t, domain.ComplianceStatusAcknowledged, check.Status)
	assert.Equal(t, "check-001", check.ID)
}
