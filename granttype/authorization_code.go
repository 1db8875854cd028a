package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// AuthorizationCode exchanges a one-time authorization code for an access
// token. The stored record must belong to the authenticated client and must
// carry the exact redirect URI the code was issued with.
type AuthorizationCode struct {
	creds clientcred.Fetcher
}

// NewAuthorizationCode creates the authorization_code handler.
func NewAuthorizationCode(creds clientcred.Fetcher) *AuthorizationCode {
	return &AuthorizationCode{creds: creds}
}

// Handle implements Handler.
func (h *AuthorizationCode) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	clientID := h.creds.Fetch(req).ClientID

	code, err := requireParam(req, "code")
	if err != nil {
		return nil, err
	}
	redirectURI, err := requireParam(req, "redirect_uri")
	if err != nil {
		return nil, err
	}

	authInfo, err := dh.GetAuthInfoByCode(ctx, code)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	// Existence before identity: absence alone is invalid_grant.
	if authInfo == nil {
		return nil, oautherr.InvalidGrant("")
	}
	if authInfo.ClientID != clientID {
		return nil, oautherr.InvalidClient("")
	}
	if authInfo.RedirectURI == "" || authInfo.RedirectURI != redirectURI {
		return nil, oautherr.RedirectURIMismatch("")
	}

	return issueToken(ctx, dh, authInfo, "Authorization code is invalid.")
}
