// Package oautherr defines the closed set of protocol errors surfaced by the
// token endpoint and the protected-resource validator. Every failure detected
// inside a grant flow is classified into one of these kinds before it reaches
// the caller; nothing else escapes the core.
package oautherr

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable error code of the OAuth2 error vocabulary.
type Kind string

const (
	KindInvalidRequest       Kind = "invalid_request"
	KindInvalidClient        Kind = "invalid_client"
	KindInvalidGrant         Kind = "invalid_grant"
	KindUnauthorizedClient   Kind = "unauthorized_client"
	KindUnsupportedGrantType Kind = "unsupported_grant_type"
	KindInvalidScope         Kind = "invalid_scope"
	KindAccessDenied         Kind = "access_denied"
	KindInvalidToken         Kind = "invalid_token"
	KindExpiredToken         Kind = "expired_token"
	KindInsufficientScope    Kind = "insufficient_scope"
	KindRedirectURIMismatch  Kind = "redirect_uri_mismatch"

	// KindServerError is not part of the protocol vocabulary. It marks
	// faults raised inside a storage contract that are none of the kinds
	// above; they are surfaced as-is instead of masquerading as a
	// client-facing protocol error.
	KindServerError Kind = "server_error"
)

// Error is a classified protocol error with a stable code and a
// human-readable description.
type Error struct {
	kind        Kind
	description string
}

func newError(k Kind, description string) *Error {
	return &Error{kind: k, description: description}
}

func InvalidRequest(description string) *Error  { return newError(KindInvalidRequest, description) }
func InvalidClient(description string) *Error   { return newError(KindInvalidClient, description) }
func InvalidGrant(description string) *Error    { return newError(KindInvalidGrant, description) }
func UnauthorizedClient(description string) *Error {
	return newError(KindUnauthorizedClient, description)
}
func UnsupportedGrantType(description string) *Error {
	return newError(KindUnsupportedGrantType, description)
}
func InvalidScope(description string) *Error   { return newError(KindInvalidScope, description) }
func AccessDenied(description string) *Error   { return newError(KindAccessDenied, description) }
func InvalidToken(description string) *Error   { return newError(KindInvalidToken, description) }
func ExpiredToken(description string) *Error   { return newError(KindExpiredToken, description) }
func InsufficientScope(description string) *Error {
	return newError(KindInsufficientScope, description)
}
func RedirectURIMismatch(description string) *Error {
	return newError(KindRedirectURIMismatch, description)
}
func ServerError(description string) *Error { return newError(KindServerError, description) }

// Error implements the error interface.
func (e *Error) Error() string {
	if e.description == "" {
		return string(e.kind)
	}
	return string(e.kind) + ": " + e.description
}

// Kind returns the machine-readable code of this error.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the code as it appears on the wire.
func (e *Error) Code() string { return string(e.kind) }

// Description returns the human-readable description, possibly empty.
func (e *Error) Description() string { return e.description }

// StatusCode returns the HTTP status a transport layer should answer with.
func (e *Error) StatusCode() int {
	switch e.kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindInsufficientScope:
		return http.StatusForbidden
	case KindServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// IsKind reports whether err is a protocol error of the given kind.
func IsKind(err error, k Kind) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.kind == k
	}
	return false
}

// From extracts the protocol error from err, if it is one.
func From(err error) (*Error, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// Classify returns err as a protocol error. A fault that is not already one
// of the taxonomy kinds becomes a server_error; it is never silently
// reclassified as a client-facing protocol error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	if oe, ok := From(err); ok {
		return oe
	}
	return ServerError(err.Error())
}
