package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/persistence"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func readyDetails(t *testing.T, h *HealthHandler) map[string]any {
	t.Helper()
	app := fiber.New()
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	if deps, ok := body["dependencies"].(map[string]any); ok {
		return deps
	}
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "response carries neither dependencies nor error: %v", body)
	deps, ok := errObj["details"].(map[string]any)
	require.True(t, ok)
	return deps
}

func TestReadyReportsDisabledAuditStoreAsDisabled(t *testing.T) {
	// No DSN configured yields a wrapper without a pool; readiness must read
	// that as "disabled", not as a failed dependency.
	h := NewHealthHandler("portal", "test",
		&persistence.Postgres{Pool: nil},
		&persistence.Redis{Client: nil},
		nil,
		observability.NewMetrics())

	deps := readyDetails(t, h)

	assert.Equal(t, "disabled", deps["postgres"])
	assert.Equal(t, "disabled", deps["upstream"])
}

func TestReadyReportsUnreachableUpstream(t *testing.T) {
	h := NewHealthHandler("portal", "test",
		&persistence.Postgres{Pool: nil},
		&persistence.Redis{Client: nil},
		stubPinger{err: errors.New("connection refused")},
		observability.NewMetrics())

	deps := readyDetails(t, h)

	assert.Equal(t, "connection refused", deps["upstream"])
}

func TestLiveAlwaysAnswers(t *testing.T) {
	h := NewHealthHandler("portal", "test",
		&persistence.Postgres{Pool: nil},
		&persistence.Redis{Client: nil},
		nil,
		observability.NewMetrics())

	app := fiber.New()
	app.Get("/health/live", h.Live)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
