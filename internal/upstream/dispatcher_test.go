package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/config"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
)

func testClient(t *testing.T, baseURL string, store session.Store, dispatcher events.Dispatcher) *Client {
	t.Helper()
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	cfg := config.UpstreamConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
		RefreshPath:    "/api/auth/refresh",
		Retry: config.RetryConfig{
			MaxAttempts: 3,
			BaseDelayMS: 1,
			Multiplier:  2,
			JitterRatio: 0,
			MaxDelayMS:  5,
		},
	}
	return NewClient(cfg, store, dispatcher, zap.NewNop(), observability.NewMetrics())
}

func storedCredential(t *testing.T, store session.Store, access, refresh string) {
	t.Helper()
	err := store.Set(context.Background(), domain.Credential{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(time.Hour),
		Subject:      domain.Subject{ID: "user-1", Name: "Ada"},
	})
	require.NoError(t, err)
}

func writeGrant(w http.ResponseWriter, token string) {
	expires := int64(3600)
	_ = json.NewEncoder(w).Encode(session.Grant{
		Token:        token,
		RefreshToken: "refresh-next",
		User:         domain.Subject{ID: "user-1", Name: "Ada"},
		ExpiresIn:    &expires,
	})
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-1", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestDoOmitsExpiredToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			writeGrant(w, "tok-fresh")
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), domain.Credential{
		AccessToken:  "tok-stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))
	client := testClient(t, server.URL, store, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoRefreshesOnceAndReplays(t *testing.T) {
	var refreshCalls, protectedCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			assert.Equal(t, "Bearer refresh-1", r.Header.Get("Authorization"))
			writeGrant(w, "tok-fresh")
			return
		}
		atomic.AddInt32(&protectedCalls, 1)
		if r.Header.Get("Authorization") != "Bearer tok-fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"value":42}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-stale", "refresh-1")

	dispatcher := events.NewInMemoryDispatcher()
	var refreshedEvents int32
	dispatcher.Subscribe(events.EventTokenRefreshed, func(ctx context.Context, e events.Event) error {
		atomic.AddInt32(&refreshedEvents, 1)
		return nil
	})

	client := testClient(t, server.URL, store, dispatcher)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&protectedCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshedEvents))

	cred := store.Get(context.Background())
	require.NotNil(t, cred)
	assert.Equal(t, "tok-fresh", cred.AccessToken)
	assert.Equal(t, "refresh-next", cred.RefreshToken)
}

func TestDoRefreshesExpiredStoredCredential(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			assert.Equal(t, "Bearer refresh-good", r.Header.Get("Authorization"))
			writeGrant(w, "tok-fresh")
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// The stored token is past expiry, so Do sends no bearer at all; the 401
	// must still reach the refresh endpoint instead of replaying the dead
	// stored token.
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), domain.Credential{
		AccessToken:  "tok-expired",
		RefreshToken: "refresh-good",
		ExpiresAt:    time.Now().Add(-time.Minute),
		Subject:      domain.Subject{ID: "user-1"},
	}))
	client := testClient(t, server.URL, store, nil)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))

	cred := store.Get(context.Background())
	require.NotNil(t, cred)
	assert.Equal(t, "tok-fresh", cred.AccessToken)
}

func TestDoReplayUnauthorizedIsTerminal(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			writeGrant(w, "tok-fresh")
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-stale", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.Error(t, err)
	assert.Equal(t, KindAuthExpired, errKind(t, err))
	// One refresh only; the replay's 401 must not trigger another.
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestDoForcedLogoutWhenRefreshRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-stale", "refresh-dead")

	dispatcher := events.NewInMemoryDispatcher()
	var expired int32
	dispatcher.Subscribe(events.EventSessionExpired, func(ctx context.Context, e events.Event) error {
		atomic.AddInt32(&expired, 1)
		return nil
	})

	client := testClient(t, server.URL, store, dispatcher)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))
	assert.Nil(t, store.Get(context.Background()), "forced logout must clear the stored credential")
	assert.Equal(t, int32(1), atomic.LoadInt32(&expired))
}

func TestDoForcedLogoutWithoutRefreshToken(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), domain.Credential{
		AccessToken: "tok-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
	client := testClient(t, server.URL, store, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

func TestDoRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-1", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"NOT_FOUND","message":"no such thing"}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-1", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindClient, ue.Kind)
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.Equal(t, "NOT_FOUND", ue.Code)
	assert.Equal(t, "no such thing", ue.Message)
}

func TestDoSkipAuthBypassesRefreshFlow(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-1", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	_, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/auth/login", SkipAuth: true})

	require.Error(t, err)
	assert.Equal(t, KindClient, errKind(t, err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

func TestConcurrentRefreshCoalesces(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
			// Hold the refresh open long enough for the other 401s to queue
			// behind the refresh mutex.
			time.Sleep(20 * time.Millisecond)
			writeGrant(w, "tok-fresh")
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-stale", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/things"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "concurrent 401s must share one refresh")
}

func TestDoCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	storedCredential(t, store, "tok-1", "refresh-1")
	client := testClient(t, server.URL, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/slow"})

	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

func TestPingTreatsAnyAnswerAsReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server.URL, session.NewMemoryStore(), nil)

	assert.NoError(t, client.Ping(context.Background()), "an error status still proves reachability")
}

func TestPingFailsWhenUpstreamUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := testClient(t, server.URL, session.NewMemoryStore(), nil)

	assert.Error(t, client.Ping(context.Background()))
}

func TestResponseDecode(t *testing.T) {
	resp := &Response{StatusCode: http.StatusOK, Body: []byte(`{"value":7}`)}

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, 7, out.Value)

	empty := &Response{StatusCode: http.StatusNoContent}
	require.NoError(t, empty.Decode(&out))
}
