package granttype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokengate/authcore/data/datatest"
	"github.com/tokengate/authcore/fetcher/clientcred"
	"github.com/tokengate/authcore/models"
	"github.com/tokengate/authcore/oautherr"
)

func tokenRequest(params map[string]string) *datatest.Request {
	merged := map[string]string{
		"client_id":     "clientId1",
		"client_secret": "clientSecret1",
	}
	for k, v := range params {
		merged[k] = v
	}
	return &datatest.Request{Params: merged, Headers: map[string]string{}}
}

func TestRefreshToken_MissingParameter(t *testing.T) {
	dh := &datatest.Handler{Req: tokenRequest(nil)}
	h := NewRefreshToken(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	require.Error(t, err)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidRequest))
	oe, _ := oautherr.From(err)
	assert.Equal(t, "'refresh_token' not found", oe.Description())
}

func TestRefreshToken_AuthInfoNotFound(t *testing.T) {
	dh := &datatest.Handler{Req: tokenRequest(map[string]string{"refresh_token": "refreshToken1"})}
	h := NewRefreshToken(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidGrant))
}

func TestRefreshToken_ClientIDMismatch(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"refresh_token": "refreshToken1"}),
		GetAuthInfoByRefreshTokenFn: func(_ context.Context, refreshToken string) (*models.AuthInfo, error) {
			return &models.AuthInfo{ClientID: "clientId2"}, nil
		},
	}
	h := NewRefreshToken(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidClient))
}

func TestRefreshToken_Simple(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"refresh_token": "refreshToken1"}),
		GetAuthInfoByRefreshTokenFn: func(_ context.Context, refreshToken string) (*models.AuthInfo, error) {
			return &models.AuthInfo{ClientID: "clientId1"}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1"}, nil
		},
	}
	h := NewRefreshToken(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "accessToken1", result.AccessToken)
	assert.Zero(t, result.ExpiresIn)
	assert.Empty(t, result.RefreshToken)
	assert.Empty(t, result.Scope)
}

func TestRefreshToken_Full(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"refresh_token": "refreshToken1"}),
		GetAuthInfoByRefreshTokenFn: func(_ context.Context, refreshToken string) (*models.AuthInfo, error) {
			require.Equal(t, "refreshToken1", refreshToken)
			return &models.AuthInfo{
				ClientID:     "clientId1",
				RedirectURI:  "redirectUri1",
				RefreshToken: "refreshToken1",
				Scope:        "scope1",
			}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1", ExpiresIn: 123}, nil
		},
	}
	h := NewRefreshToken(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "accessToken1", result.AccessToken)
	assert.Equal(t, int64(123), result.ExpiresIn)
	assert.Equal(t, "refreshToken1", result.RefreshToken)
	assert.Equal(t, "scope1", result.Scope)
}

func TestRefreshToken_IssuanceReturnsNil(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"refresh_token": "refreshToken1"}),
		GetAuthInfoByRefreshTokenFn: func(_ context.Context, _ string) (*models.AuthInfo, error) {
			return &models.AuthInfo{ClientID: "clientId1"}, nil
		},
	}
	h := NewRefreshToken(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	require.Error(t, err)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidGrant))
	oe, _ := oautherr.From(err)
	assert.Equal(t, "Refresh token is invalid.", oe.Description())
}
