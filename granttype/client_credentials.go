package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// ClientCredentials issues a token to a client acting as itself. The storage
// contract supplies a user id representing the client, distinguishable from
// real user ids.
type ClientCredentials struct {
	creds clientcred.Fetcher
}

// NewClientCredentials creates the client_credentials handler.
func NewClientCredentials(creds clientcred.Fetcher) *ClientCredentials {
	return &ClientCredentials{creds: creds}
}

// Handle implements Handler.
func (h *ClientCredentials) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	cred := h.creds.Fetch(req)

	userID, err := dh.GetClientUserID(ctx, cred.ClientID, cred.ClientSecret)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if userID == "" {
		return nil, oautherr.InvalidClient("")
	}

	scope := req.Parameter("scope")
	authInfo, err := dh.CreateOrUpdateAuthInfo(ctx, cred.ClientID, userID, scope)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if authInfo == nil {
		return nil, oautherr.InvalidGrant("")
	}

	return issueToken(ctx, dh, authInfo, "ClientCredential is invalid.")
}
