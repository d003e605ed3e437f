// Package upstream is the single choke point for credentialed calls to the
// remote Aurigraph ledger API. It attaches the bearer credential, retries
// transport failures with backoff, and on a 401 performs one silent refresh
// followed by one replay of the original request.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/config"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
)

const maxResponseBytes = 8 << 20

// Request describes one logical call to the upstream API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// SkipAuth sends the request without a bearer credential and exempts it
	// from the 401 refresh flow. Login and refresh calls set this.
	SkipAuth bool
	// Timeout overrides the per-attempt timeout for this call.
	Timeout time.Duration
}

// Response carries the status and raw body of a successful call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into target.
func (r *Response) Decode(target any) error {
	if target == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

// Client dispatches authenticated requests against the upstream API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	refreshPath string
	timeout     time.Duration
	policy      RetryPolicy

	store      session.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	// refreshMu serializes credential refreshes so that concurrent 401s
	// coalesce into a single upstream refresh call.
	refreshMu sync.Mutex
}

// NewClient builds a dispatcher from env configuration.
func NewClient(cfg config.UpstreamConfig, store session.Store, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		refreshPath: cfg.RefreshPath,
		timeout:     cfg.Timeout(),
		policy:      PolicyFromConfig(cfg.Retry),
		store:       store,
		dispatcher:  dispatcher,
		logger:      logger,
		metrics:     metrics,
	}
}

// Do executes one logical request. A 401 on an authenticated call triggers at
// most one refresh and one replay; every other non-success status maps to a
// typed error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()

	token := ""
	if !req.SkipAuth {
		if cred := c.store.Get(ctx); cred != nil && !cred.Expired(time.Now()) {
			token = cred.AccessToken
		}
	}

	resp, err := c.send(ctx, req, token, requestID)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.SkipAuth {
		freshToken, err := c.refreshSession(ctx, token, req.Path)
		if err != nil {
			return nil, err
		}

		replay, err := c.send(ctx, req, freshToken, requestID)
		if err != nil {
			return nil, err
		}
		if replay.StatusCode == http.StatusUnauthorized {
			// No second refresh: the replay's failure is terminal.
			return nil, statusError(KindAuthExpired, replay)
		}
		return c.finalize(replay)
	}

	return c.finalize(resp)
}

// Ping probes upstream reachability for readiness checks. Any HTTP answer,
// including an error status, counts as reachable; only a transport failure
// does not. A single attempt, no retries.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.attempt(ctx, Request{
		Method:   http.MethodGet,
		Path:     "/health",
		SkipAuth: true,
		Timeout:  2 * time.Second,
	}, "", uuid.NewString())
	if err == nil {
		return nil
	}
	if ue, ok := AsError(err); ok && ue.Kind != KindTransport && ue.Kind != KindCanceled {
		return nil
	}
	return err
}

// Get performs a GET request and decodes the response into target.
func (c *Client) Get(ctx context.Context, path string, query url.Values, target any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return resp.Decode(target)
}

// Post performs a POST request with a JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body any, target any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(target)
}

// send dispatches the request through the retry primitive. It returns a
// Response for any status below 500 (including 401 and other 4xx); 5xx and
// 429 become retryable errors, transport failures likewise.
func (c *Client) send(ctx context.Context, req Request, token, requestID string) (*Response, error) {
	return Retry(ctx, c.policy, func(ctx context.Context) (*Response, error) {
		return c.attempt(ctx, req, token, requestID)
	})
}

func (c *Client) attempt(ctx context.Context, req Request, token, requestID string) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.buildRequest(attemptCtx, req, token, requestID)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// The caller giving up is distinct from the attempt timing out:
		// attemptCtx deadlines read as transport failures, a dead caller
		// context reads as cancellation.
		if ctx.Err() != nil {
			c.metrics.RecordUpstreamAttempt(req.Path, "canceled")
			return nil, &Error{Kind: KindCanceled, Message: "request canceled", Err: ctx.Err()}
		}
		// Connection failures and per-attempt timeouts happened before any
		// response was received, so a retry is safe.
		c.metrics.RecordUpstreamAttempt(req.Path, "transport_error")
		return nil, &Error{Kind: KindTransport, Message: "upstream unreachable", Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.RecordUpstreamAttempt(req.Path, "transport_error")
		return nil, &Error{Kind: KindTransport, Message: "read upstream response", Err: err}
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: body}

	if httpResp.StatusCode >= http.StatusInternalServerError || httpResp.StatusCode == http.StatusTooManyRequests {
		c.metrics.RecordUpstreamAttempt(req.Path, "server_error")
		return nil, statusError(KindServer, resp)
	}

	c.metrics.RecordUpstreamAttempt(req.Path, "completed")
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request, token, requestID string) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindClient, Message: "encode request body", Err: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindClient, Message: "build request", Err: err}
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// finalize maps a completed response to its terminal outcome.
func (c *Client) finalize(resp *Response) (*Response, error) {
	if resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}
	return nil, statusError(KindClient, resp)
}

// refreshSession performs the single-flight credential refresh. staleToken is
// the access token that was rejected; when the stored token already differs,
// another in-flight request refreshed first and its result is reused. The
// returned token is the one the replay should carry.
func (c *Client) refreshSession(ctx context.Context, staleToken, path string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// A stored token that differs from the rejected one means another
	// in-flight request already refreshed; reuse it. A stored-but-expired
	// token never qualifies: requests that skipped attaching it arrive here
	// with an empty staleToken, and handing the expired token back would
	// just replay into another 401.
	cred := c.store.Get(ctx)
	if cred != nil && cred.AccessToken != "" && cred.AccessToken != staleToken && !cred.Expired(time.Now()) {
		return cred.AccessToken, nil
	}
	if cred == nil || cred.RefreshToken == "" {
		return "", c.forceLogout(ctx, "no refresh credential", path)
	}

	grant, err := c.callRefresh(ctx, cred.RefreshToken)
	if err != nil {
		if IsCanceled(err) {
			return "", err
		}
		c.metrics.RecordRefresh(false)
		c.logger.Warn("credential refresh rejected", zap.String("path", path), zap.Error(err))
		return "", c.forceLogout(ctx, "refresh rejected", path)
	}

	newCred := session.CredentialFromGrant(*grant, cred.RefreshToken, time.Now())
	if err := c.store.Set(ctx, newCred); err != nil {
		// The replay can still proceed with the in-memory token.
		c.logger.Warn("persist refreshed credential failed", zap.Error(err))
	}

	c.metrics.RecordRefresh(true)
	_ = c.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventTokenRefreshed,
		SubjectID: subjectID(newCred.Subject.ID),
		Payload:   events.TokenRefreshedPayload{ExpiresAt: newCred.ExpiresAt},
	})

	return newCred.AccessToken, nil
}

// callRefresh presents the refresh token as the bearer credential on the
// dedicated refresh path. The call never re-enters the 401 handling above.
func (c *Client) callRefresh(ctx context.Context, refreshToken string) (*session.Grant, error) {
	resp, err := c.send(ctx, Request{Method: http.MethodPost, Path: c.refreshPath, SkipAuth: true}, refreshToken, uuid.NewString())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(KindClient, resp)
	}

	var grant session.Grant
	if err := resp.Decode(&grant); err != nil {
		return nil, err
	}
	if grant.Token == "" {
		return nil, &Error{Kind: KindClient, Message: "refresh response missing token"}
	}
	return &grant, nil
}

func (c *Client) forceLogout(ctx context.Context, reason, path string) error {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("clear session failed during forced logout", zap.Error(err))
	}
	c.metrics.RecordForcedLogout()
	c.logger.Info("forced logout", zap.String("reason", reason), zap.String("path", path))
	_ = c.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventSessionExpired,
		Payload: events.SessionExpiredPayload{Reason: reason, Path: path},
	})
	return &Error{
		Kind:       KindSessionExpired,
		StatusCode: http.StatusUnauthorized,
		Code:       "SESSION_EXPIRED",
		Message:    "session expired: " + reason,
	}
}

// statusError shapes a non-success response into a typed error, carrying the
// upstream's own error code and message when the body provides them.
func statusError(kind ErrorKind, resp *Response) *Error {
	e := &Error{Kind: kind, StatusCode: resp.StatusCode}
	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		e.Code = body.Code
		e.Message = body.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}

func subjectID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
