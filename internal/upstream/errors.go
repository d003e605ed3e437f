package upstream

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upstream call failures.
type ErrorKind int

const (
	// KindTransport covers failures before any response was received
	// (connection refused, DNS failure, timeout). Always retryable.
	KindTransport ErrorKind = iota
	// KindClient covers 4xx responses other than 401. Never retried.
	KindClient
	// KindServer covers 5xx and 429 responses. Retried per policy.
	KindServer
	// KindAuthExpired marks a 401 response. Handled by the refresh flow and
	// only surfaced when the replayed request fails with 401 again.
	KindAuthExpired
	// KindSessionExpired marks refresh failure or a missing refresh
	// credential. Terminal and accompanied by forced logout.
	KindSessionExpired
	// KindCanceled marks caller-side cancellation, distinct from timeouts.
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindAuthExpired:
		return "auth_expired"
	case KindSessionExpired:
		return "session_expired"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned from the dispatcher.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("upstream %s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("upstream %s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure occurred before or instead of a
// definitive application answer, making a retry safe.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport || e.Kind == KindServer
}

// AsError extracts a typed upstream error from err.
func AsError(err error) (*Error, bool) {
	var ue *Error
	ok := errors.As(err, &ue)
	return ue, ok
}

// KindOf returns the error kind, or false when err is not an upstream error.
func KindOf(err error) (ErrorKind, bool) {
	if ue, ok := AsError(err); ok {
		return ue.Kind, true
	}
	return 0, false
}

// IsSessionExpired reports whether err is a terminal session expiry.
func IsSessionExpired(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindSessionExpired
}

// IsCanceled reports whether err is a caller-side cancellation.
func IsCanceled(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindCanceled
}

// errorBody is the JSON error shape the upstream returns on non-2xx.
type errorBody struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}
