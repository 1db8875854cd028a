// Package granttype implements one state machine per OAuth2 grant type.
// Each handler turns a token request into an issued access token or a
// precise protocol error, calling the storage contract strictly in the
// sequence its flow defines.
package granttype

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/models"
	"github.com/tokengate/authcore/oautherr"
)

// Result is the success payload of a token exchange. It is constructed once
// per successful grant and never mutated after the caller observes it.
type Result struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`

	// User carries the authenticated identity for assertion grants.
	// It is for downstream consumption, not for the wire.
	User *models.UserData `json:"-"`
}

// Handler processes one grant flow against a request-scoped storage contract.
type Handler interface {
	Handle(ctx context.Context, dh data.Handler) (*Result, error)
}

// requireParam returns the named request parameter, or invalid_request
// naming the missing parameter. Empty equals absent.
func requireParam(req models.Request, name string) (string, error) {
	v := req.Parameter(name)
	if v == "" {
		return "", oautherr.InvalidRequest("'" + name + "' not found")
	}
	return v, nil
}

// issueToken materializes the access token for an authorization believed
// valid and assembles the result. No business validation happens here; all
// eligibility checks precede it in the calling handler.
func issueToken(ctx context.Context, dh data.Handler, authInfo *models.AuthInfo, invalidMsg string) (*Result, error) {
	token, err := dh.CreateOrUpdateAccessToken(ctx, authInfo)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if token == nil || token.Token == "" {
		return nil, oautherr.InvalidGrant(invalidMsg)
	}
	return &Result{
		TokenType:    "Bearer",
		AccessToken:  token.Token,
		ExpiresIn:    token.ExpiresIn,
		RefreshToken: authInfo.RefreshToken,
		Scope:        authInfo.Scope,
	}, nil
}
