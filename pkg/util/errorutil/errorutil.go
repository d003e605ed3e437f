package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewSessionExpired() error {
	return NewDomainError("SESSION_EXPIRED", "session expired; sign in again", http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic and upstream errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if ue, ok := upstream.AsError(err); ok {
		return fromUpstream(ue)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// fromUpstream maps the dispatcher's error taxonomy onto portal responses.
func fromUpstream(ue *upstream.Error) *DomainError {
	switch ue.Kind {
	case upstream.KindSessionExpired:
		return &DomainError{
			Code:       "SESSION_EXPIRED",
			Message:    "session expired; sign in again",
			HTTPStatus: http.StatusUnauthorized,
			Err:        ue,
		}
	case upstream.KindAuthExpired:
		return &DomainError{
			Code:       "UNAUTHORIZED",
			Message:    "upstream rejected the session credential",
			HTTPStatus: http.StatusUnauthorized,
			Err:        ue,
		}
	case upstream.KindClient:
		status := ue.StatusCode
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		code := ue.Code
		if code == "" {
			code = "UPSTREAM_REJECTED"
		}
		return &DomainError{Code: code, Message: ue.Message, HTTPStatus: status, Err: ue}
	case upstream.KindServer:
		return &DomainError{
			Code:       "UPSTREAM_ERROR",
			Message:    "upstream service error",
			HTTPStatus: http.StatusBadGateway,
			Err:        ue,
		}
	case upstream.KindTransport:
		return &DomainError{
			Code:       "UPSTREAM_UNREACHABLE",
			Message:    "upstream service unreachable",
			HTTPStatus: http.StatusServiceUnavailable,
			Err:        ue,
		}
	case upstream.KindCanceled:
		return &DomainError{
			Code:       "REQUEST_CANCELED",
			Message:    "request canceled",
			HTTPStatus: http.StatusRequestTimeout,
			Err:        ue,
		}
	default:
		return &DomainError{
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
			HTTPStatus: http.StatusInternalServerError,
			Err:        ue,
		}
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
