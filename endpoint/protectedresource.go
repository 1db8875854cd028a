package endpoint

import (
	"context"
	"time"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/accesstoken"
	"github.com/tokengate/authcore/models"
	"github.com/tokengate/authcore/oautherr"
	"github.com/tokengate/authcore/outcome"
)

// Response is the authenticated principal of a protected-resource request,
// taken verbatim from the authorization record.
type Response struct {
	RemoteUser string `json:"remote_user"`
	ClientID   string `json:"client_id"`
	Scope      string `json:"scope,omitempty"`
}

// ProtectedResourceDeps contains dependencies for the validator.
type ProtectedResourceDeps struct {
	Factory  data.HandlerFactory
	Fetchers *accesstoken.Provider
}

// ProtectedResource walks bearer token -> authorization -> client/user
// validation to authenticate a resource request. Client and user standing
// are re-checked on every access: token validity and account status are
// independent and the latter can change between issuance and use.
type ProtectedResource struct {
	factory  data.HandlerFactory
	fetchers *accesstoken.Provider
	now      func() time.Time
}

// NewProtectedResource creates the validator.
func NewProtectedResource(d ProtectedResourceDeps) *ProtectedResource {
	fetchers := d.Fetchers
	if fetchers == nil {
		fetchers = accesstoken.NewDefaultProvider()
	}
	return &ProtectedResource{factory: d.Factory, fetchers: fetchers, now: time.Now}
}

// HandleRequest validates one resource request. The five checks run in
// order and short-circuit on the first failure.
func (p *ProtectedResource) HandleRequest(ctx context.Context, req models.Request) (*Response, error) {
	fetcher, ok := p.fetchers.Get(req)
	if !ok {
		return nil, oautherr.InvalidRequest("Access token was not specified.")
	}
	token := fetcher.Fetch(req).Token

	dh, err := p.factory.Create(ctx, req)
	if err != nil {
		return nil, oautherr.Classify(err)
	}

	accessToken, err := dh.GetAccessToken(ctx, token)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if accessToken == nil || accessToken.Token == "" {
		return nil, oautherr.InvalidToken("Invalid access token.")
	}
	if accessToken.ExpiredAt(p.now()) {
		return nil, oautherr.ExpiredToken("The access token expired.")
	}

	authInfo, err := dh.GetAuthInfoByID(ctx, accessToken.AuthID)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if authInfo == nil {
		return nil, oautherr.InvalidToken("Invalid access token.")
	}

	valid, err := dh.ValidateClientByID(ctx, authInfo.ClientID)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if !valid {
		return nil, oautherr.InvalidToken("Invalid client.")
	}

	valid, err = dh.ValidateUserByID(ctx, authInfo.UserID)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if !valid {
		return nil, oautherr.InvalidToken("Invalid user.")
	}

	return &Response{
		RemoteUser: authInfo.UserID,
		ClientID:   authInfo.ClientID,
		Scope:      authInfo.Scope,
	}, nil
}

// HandleRequestAsync delivers the outcome through a single-shot
// continuation.
func (p *ProtectedResource) HandleRequestAsync(ctx context.Context, req models.Request, h outcome.Handler[*Response]) {
	outcome.Once(h)(outcome.Of(p.HandleRequest(ctx, req)))
}
