package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// JWTBearer exchanges a JWT assertion for an access token. Cryptographic
// verification of the assertion belongs to the storage contract; the handler
// only sequences the flow and classifies failures.
type JWTBearer struct {
	creds clientcred.Fetcher
}

// NewJWTBearer creates the jwt-bearer handler.
func NewJWTBearer(creds clientcred.Fetcher) *JWTBearer {
	return &JWTBearer{creds: creds}
}

// Handle implements Handler.
func (h *JWTBearer) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	clientID := h.creds.Fetch(req).ClientID

	assertion, err := requireParam(req, "assertion")
	if err != nil {
		return nil, err
	}

	userData, err := dh.GetUserIDByAssertionJWT(ctx, clientID, assertion)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if userData == nil || userData.ID == "" {
		return nil, oautherr.InvalidGrant("")
	}

	scope := req.Parameter("scope")
	authInfo, err := dh.CreateOrUpdateAuthInfo(ctx, clientID, userData.ID, scope)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if authInfo == nil {
		return nil, oautherr.InvalidGrant("")
	}
	if authInfo.ClientID != clientID {
		return nil, oautherr.InvalidClient("")
	}

	result, err := issueToken(ctx, dh, authInfo, "JWT is invalid.")
	if err != nil {
		return nil, err
	}
	result.User = userData
	return result, nil
}
