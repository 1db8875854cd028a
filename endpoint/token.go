// Package endpoint exposes the two entry points of the protocol core: the
// token endpoint and the protected-resource validator. Both terminate in a
// success payload or a classified protocol error; nothing else is
// observable.
package endpoint

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/granttype"
	"github.com/tokengate/authcore/models"
	"github.com/tokengate/authcore/oautherr"
	"github.com/tokengate/authcore/outcome"
)

// TokenDeps contains dependencies for the token endpoint.
type TokenDeps struct {
	Factory  data.HandlerFactory
	Provider *granttype.Provider
	Creds    clientcred.Fetcher
}

// Token routes a token request to the grant handler named by its grant_type
// and validates the client before the handler runs.
type Token struct {
	factory  data.HandlerFactory
	provider *granttype.Provider
	creds    clientcred.Fetcher
}

// NewToken creates the token endpoint.
func NewToken(d TokenDeps) *Token {
	creds := d.Creds
	if creds == nil {
		creds = clientcred.NewDefault()
	}
	provider := d.Provider
	if provider == nil {
		provider = granttype.NewProvider(creds)
	}
	return &Token{factory: d.Factory, provider: provider, creds: creds}
}

// HandleRequest processes one token request. Every failure is a
// *oautherr.Error; storage faults outside the taxonomy surface as
// server_error, never as a protocol error.
func (t *Token) HandleRequest(ctx context.Context, req models.Request) (*granttype.Result, error) {
	grantType := req.Parameter("grant_type")
	if grantType == "" {
		return nil, oautherr.InvalidRequest("'grant_type' not found")
	}
	handler, ok := t.provider.Handler(grantType)
	if !ok {
		return nil, oautherr.UnsupportedGrantType("")
	}

	cred := t.creds.Fetch(req)
	if cred.ClientID == "" {
		return nil, oautherr.InvalidRequest("'client_id' not found")
	}

	dh, err := t.factory.Create(ctx, req)
	if err != nil {
		return nil, oautherr.Classify(err)
	}

	valid, err := dh.ValidateClient(ctx, cred.ClientID, cred.ClientSecret, grantType)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	if !valid {
		return nil, oautherr.InvalidClient("")
	}

	result, err := handler.Handle(ctx, dh)
	if err != nil {
		return nil, oautherr.Classify(err)
	}
	return result, nil
}

// HandleRequestAsync delivers the outcome through a single-shot
// continuation, for hosts that drive the core from callback-style plumbing.
func (t *Token) HandleRequestAsync(ctx context.Context, req models.Request, h outcome.Handler[*granttype.Result]) {
	outcome.Once(h)(outcome.Of(t.HandleRequest(ctx, req)))
}
