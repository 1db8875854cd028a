package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/oautherr"
)

// SAML2Bearer exchanges a SAML2 assertion for an access token. The flow is
// the JWT bearer flow with a different authentication call: the assertion is
// verified on its own, no client id is passed along.
type SAML2Bearer struct {
	creds clientcred.Fetcher
}

// NewSAML2Bearer creates the saml2-bearer handler.
func NewSAML2Bearer(creds clientcred.Fetcher) *SAML2Bearer {
	return &SAML2Bearer{creds: creds}
}

// Handle implements Handler.
func (h *SAML2Bearer) Handle(ctx context.Context, dh data.Handler) (*Result, error) {
	req := dh.Request()
	clientID := h.creds.Fetch(req).ClientID

	assertion, err := requireParam(req, "assertion")
	if err != nil {
		return nil, err
	}

	userData, err := dh.GetUserIDByAssertion(ctx, assertion)
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

	result, err := issueToken(ctx, dh, authInfo, "Credential is invalid.")
	if err != nil {
		return nil, err
	}
	result.User = userData
	return result, nil
}
