package oautherr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		code   string
		status int
	}{
		{InvalidRequest(""), "invalid_request", http.StatusBadRequest},
		{InvalidClient(""), "invalid_client", http.StatusUnauthorized},
		{InvalidGrant(""), "invalid_grant", http.StatusUnauthorized},
		{UnauthorizedClient(""), "unauthorized_client", http.StatusUnauthorized},
		{UnsupportedGrantType(""), "unsupported_grant_type", http.StatusUnauthorized},
		{InvalidScope(""), "invalid_scope", http.StatusUnauthorized},
		{AccessDenied(""), "access_denied", http.StatusUnauthorized},
		{InvalidToken(""), "invalid_token", http.StatusUnauthorized},
		{ExpiredToken(""), "expired_token", http.StatusUnauthorized},
		{InsufficientScope(""), "insufficient_scope", http.StatusForbidden},
		{RedirectURIMismatch(""), "redirect_uri_mismatch", http.StatusUnauthorized},
		{ServerError(""), "server_error", http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, c.err.Code())
		assert.Equal(t, c.status, c.err.StatusCode())
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "invalid_request: 'code' not found", InvalidRequest("'code' not found").Error())
	assert.Equal(t, "invalid_grant", InvalidGrant("").Error())
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	// Taxonomy errors pass through untouched.
	oe := Classify(InvalidGrant("gone"))
	assert.Equal(t, KindInvalidGrant, oe.Kind())
	assert.Equal(t, "gone", oe.Description())

	// Anything else becomes server_error, never a protocol error.
	oe = Classify(errors.New("pq: connection refused"))
	require.Equal(t, KindServerError, oe.Kind())
	assert.Equal(t, "pq: connection refused", oe.Description())
}

func TestIsKindThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ExpiredToken(""))
	assert.True(t, IsKind(wrapped, KindExpiredToken))
	assert.False(t, IsKind(wrapped, KindInvalidToken))
	assert.False(t, IsKind(errors.New("plain"), KindExpiredToken))
}
