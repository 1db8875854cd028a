// Package data defines the storage contract the grant handlers and the
// protected-resource validator depend on. A host backs it with its own
// persistence; the core never implements it.
//
// One Handler instance serves exactly one inbound request and is constructed
// with that request as context. Implementations may complete synchronously
// or hand the call off to their own asynchronous machinery; callers only see
// the returned value.
//
// Lookup methods signal "not found / invalid" with a nil (or empty) result
// and a nil error. The caller classifies that into invalid_grant or
// invalid_token as appropriate. The authentication methods may return an
// oautherr value (the access_denied family) directly; any other non-nil
// error is treated as an internal fault.
package data

import (
	"context"

	"github.com/tokengate/authcore/models"
)

// Handler is the capability interface backing authorization state.
// Every method must be total: no silent no-op defaults.
type Handler interface {
	// Request returns the inbound request this instance was created for.
	Request() models.Request

	// ValidateClient reports whether the client exists, the secret matches
	// and the client is permitted to use the grant type.
	ValidateClient(ctx context.Context, clientID, clientSecret, grantType string) (bool, error)

	// GetUserID authenticates a resource owner by password and returns the
	// user id, "" when the user is unknown or the password does not match.
	GetUserID(ctx context.Context, username, password string) (string, error)

	// GetUserIDByAssertion authenticates via a SAML2 bearer assertion.
	GetUserIDByAssertion(ctx context.Context, assertion string) (*models.UserData, error)

	// GetUserIDByAssertionJWT authenticates via a JWT bearer assertion
	// issued to the given client.
	GetUserIDByAssertionJWT(ctx context.Context, clientID, assertion string) (*models.UserData, error)

	// GetUserIDByCustomToken authenticates via a provider-defined token.
	GetUserIDByCustomToken(ctx context.Context, token string) (*models.UserData, error)

	// CreateOrUpdateAuthInfo mints authorization state directly for grants
	// that carry their own proof (password, client credentials, assertions).
	// A nil result refuses the grant.
	CreateOrUpdateAuthInfo(ctx context.Context, clientID, userID, scope string) (*models.AuthInfo, error)

	// CreateOrUpdateAccessToken mints or renews the bearer token for an
	// authorization. All eligibility checks have passed by the time it is
	// called, so it is expected to rarely fail.
	CreateOrUpdateAccessToken(ctx context.Context, authInfo *models.AuthInfo) (*models.AccessToken, error)

	// GetAuthInfoByCode resolves a one-time authorization code.
	GetAuthInfoByCode(ctx context.Context, code string) (*models.AuthInfo, error)

	// GetAuthInfoByRefreshToken resolves a refresh token. Refresh-token
	// expiry, if any, is this method's responsibility.
	GetAuthInfoByRefreshToken(ctx context.Context, refreshToken string) (*models.AuthInfo, error)

	// GetAuthInfoByID resolves an authorization by its identifier.
	GetAuthInfoByID(ctx context.Context, id string) (*models.AuthInfo, error)

	// GetClientUserID returns the user id representing the client itself,
	// used by the client-credentials grant.
	GetClientUserID(ctx context.Context, clientID, clientSecret string) (string, error)

	// ValidateClientByID re-checks the client's live status at
	// resource-access time, independent of token validity.
	ValidateClientByID(ctx context.Context, clientID string) (bool, error)

	// ValidateUserByID re-checks the user's live status at resource-access
	// time, independent of token validity.
	ValidateUserByID(ctx context.Context, userID string) (bool, error)

	// GetAccessToken resolves a bearer token string.
	GetAccessToken(ctx context.Context, token string) (*models.AccessToken, error)
}

// HandlerFactory creates one request-scoped Handler per inbound request.
type HandlerFactory interface {
	Create(ctx context.Context, req models.Request) (Handler, error)
}

// HandlerFactoryFunc adapts a function to the HandlerFactory interface.
type HandlerFactoryFunc func(ctx context.Context, req models.Request) (Handler, error)

func (f HandlerFactoryFunc) Create(ctx context.Context, req models.Request) (Handler, error) {
	return f(ctx, req)
}
