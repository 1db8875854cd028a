package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// Password implements the resource-owner password credentials grant.
type Password struct {
	creds clientcred.Fetcher
}

// NewPassword creates the password handler.
func NewPassword(creds clientcred.Fetcher) *Password {
	return &Password{creds: creds}
}

// Handle implements Handler.
func (h *Password) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	clientID := h.creds.Fetch(req).ClientID

	username, err := requireParam(req, "username")
	if err != nil {
		return nil, err
	}
	password, err := requireParam(req, "password")
	if err != nil {
		return nil, err
	}

	// May fail with access_denied; anything else is an internal fault.
	userID, err := dh.GetUserID(ctx, username, password)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if userID == "" {
		return nil, oautherr.InvalidGrant("")
	}

	scope := req.Parameter("scope")
	authInfo, err := dh.CreateOrUpdateAuthInfo(ctx, clientID, userID, scope)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if authInfo == nil {
		return nil, oautherr.InvalidGrant("")
	}
	if authInfo.ClientID != clientID {
		return nil, oautherr.InvalidClient("")
	}

	return issueToken(ctx, dh, authInfo, "Credential is invalid.")
}
