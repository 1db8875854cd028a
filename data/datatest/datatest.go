// Package datatest provides a configurable storage-contract double and a
// map-backed request for tests of the grant handlers and endpoints.
package datatest

import (
	"context"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/models"
)

// Request is a map-backed models.Request.
type Request struct {
	Params  map[string]string
	Headers map[string]string
}

func (r *Request) Parameter(name string) string { return r.Params[name] }
func (r *Request) Header(name string) string    { return r.Headers[name] }

// Handler implements data.Handler with overridable behavior per method.
// Unset lookups answer "not found"; unset validations answer true.
type Handler struct {
	Req models.Request

	ValidateClientFn            func(ctx context.Context, clientID, clientSecret, grantType string) (bool, error)
	GetUserIDFn                 func(ctx context.Context, username, password string) (string, error)
	GetUserIDByAssertionFn      func(ctx context.Context, assertion string) (*models.UserData, error)
	GetUserIDByAssertionJWTFn   func(ctx context.Context, clientID, assertion string) (*models.UserData, error)
	GetUserIDByCustomTokenFn    func(ctx context.Context, token string) (*models.UserData, error)
	CreateOrUpdateAuthInfoFn    func(ctx context.Context, clientID, userID, scope string) (*models.AuthInfo, error)
	CreateOrUpdateAccessTokenFn func(ctx context.Context, authInfo *models.AuthInfo) (*models.AccessToken, error)
	GetAuthInfoByCodeFn         func(ctx context.Context, code string) (*models.AuthInfo, error)
	GetAuthInfoByRefreshTokenFn func(ctx context.Context, refreshToken string) (*models.AuthInfo, error)
	GetAuthInfoByIDFn           func(ctx context.Context, id string) (*models.AuthInfo, error)
	GetClientUserIDFn           func(ctx context.Context, clientID, clientSecret string) (string, error)
	ValidateClientByIDFn        func(ctx context.Context, clientID string) (bool, error)
	ValidateUserByIDFn          func(ctx context.Context, userID string) (bool, error)
	GetAccessTokenFn            func(ctx context.Context, token string) (*models.AccessToken, error)
}

var _ data.Handler = (*Handler)(nil)

func (h *Handler) Request() models.Request { return h.Req }

func (h *Handler) ValidateClient(ctx context.Context, clientID, clientSecret, grantType string) (bool, error) {
	if h.ValidateClientFn != nil {
		return h.ValidateClientFn(ctx, clientID, clientSecret, grantType)
	}
	return true, nil
}

func (h *Handler) GetUserID(ctx context.Context, username, password string) (string, error) {
	if h.GetUserIDFn != nil {
		return h.GetUserIDFn(ctx, username, password)
	}
	return "", nil
}

func (h *Handler) GetUserIDByAssertion(ctx context.Context, assertion string) (*models.UserData, error) {
	if h.GetUserIDByAssertionFn != nil {
		return h.GetUserIDByAssertionFn(ctx, assertion)
	}
	return nil, nil
}

func (h *Handler) GetUserIDByAssertionJWT(ctx context.Context, clientID, assertion string) (*models.UserData, error) {
	if h.GetUserIDByAssertionJWTFn != nil {
		return h.GetUserIDByAssertionJWTFn(ctx, clientID, assertion)
	}
	return nil, nil
}

func (h *Handler) GetUserIDByCustomToken(ctx context.Context, token string) (*models.UserData, error) {
	if h.GetUserIDByCustomTokenFn != nil {
		return h.GetUserIDByCustomTokenFn(ctx, token)
	}
	return nil, nil
}

func (h *Handler) CreateOrUpdateAuthInfo(ctx context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
	if h.CreateOrUpdateAuthInfoFn != nil {
		return h.CreateOrUpdateAuthInfoFn(ctx, clientID, userID, scope)
	}
	return nil, nil
}

func (h *Handler) CreateOrUpdateAccessToken(ctx context.Context, authInfo *models.AuthInfo) (*models.AccessToken, error) {
	if h.CreateOrUpdateAccessTokenFn != nil {
		return h.CreateOrUpdateAccessTokenFn(ctx, authInfo)
	}
	return nil, nil
}

func (h *Handler) GetAuthInfoByCode(ctx context.Context, code string) (*models.AuthInfo, error) {
	if h.GetAuthInfoByCodeFn != nil {
		return h.GetAuthInfoByCodeFn(ctx, code)
	}
	return nil, nil
}

func (h *Handler) GetAuthInfoByRefreshToken(ctx context.Context, refreshToken string) (*models.AuthInfo, error) {
	if h.GetAuthInfoByRefreshTokenFn != nil {
		return h.GetAuthInfoByRefreshTokenFn(ctx, refreshToken)
	}
	return nil, nil
}

func (h *Handler) GetAuthInfoByID(ctx context.Context, id string) (*models.AuthInfo, error) {
	if h.GetAuthInfoByIDFn != nil {
		return h.GetAuthInfoByIDFn(ctx, id)
	}
	return nil, nil
}

func (h *Handler) GetClientUserID(ctx context.Context, clientID, clientSecret string) (string, error) {
	if h.GetClientUserIDFn != nil {
		return h.GetClientUserIDFn(ctx, clientID, clientSecret)
	}
	return "", nil
}

func (h *Handler) ValidateClientByID(ctx context.Context, clientID string) (bool, error) {
	if h.ValidateClientByIDFn != nil {
		return h.ValidateClientByIDFn(ctx, clientID)
	}
	return true, nil
}

func (h *Handler) ValidateUserByID(ctx context.Context, userID string) (bool, error) {
	if h.ValidateUserByIDFn != nil {
		return h.ValidateUserByIDFn(ctx, userID)
	}
	return true, nil
}

func (h *Handler) GetAccessToken(ctx context.Context, token string) (*models.AccessToken, error) {
	if h.GetAccessTokenFn != nil {
		return h.GetAccessTokenFn(ctx, token)
	}
	return nil, nil
}

// Factory hands out the same Handler for every request, wiring the request
// into it the way a real factory scopes a handler to its request.
type Factory struct {
	Handler *Handler
}

func (f *Factory) Create(_ context.Context, req models.Request) (data.Handler, error) {
	f.Handler.Req = req
	return f.Handler, nil
}
