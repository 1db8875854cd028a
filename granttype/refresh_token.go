package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// RefreshToken re-issues an access token from a long-lived refresh token.
type RefreshToken struct {
	creds clientcred.Fetcher
}

// NewRefreshToken creates the refresh_token handler.
func NewRefreshToken(creds clientcred.Fetcher) *RefreshToken {
	return &RefreshToken{creds: creds}
}

// Handle implements Handler.
func (h *RefreshToken) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	clientID := h.creds.Fetch(req).ClientID

	refreshToken, err := requireParam(req, "refresh_token")
	if err != nil {
		return nil, err
	}

	authInfo, err := dh.GetAuthInfoByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if authInfo == nil {
		return nil, oautherr.InvalidGrant("")
	}
	if authInfo.ClientID != clientID {
		return nil, oautherr.InvalidClient("")
	}

	return issueToken(ctx, dh, authInfo, "Refresh token is invalid.")
}
