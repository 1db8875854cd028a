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

func TestClientCredentials_EmptyClientUserID(t *testing.T) {
	dh := &datatest.Handler{Req: tokenRequest(nil)}
	h := NewClientCredentials(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidClient))
}

func TestClientCredentials_AuthInfoNotCreated(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(nil),
		GetClientUserIDFn: func(_ context.Context, clientID, clientSecret string) (string, error) {
			return "userId1", nil
		},
	}
	h := NewClientCredentials(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidGrant))
}

func TestClientCredentials_Success(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"scope": "scope1"}),
		GetClientUserIDFn: func(_ context.Context, clientID, clientSecret string) (string, error) {
			require.Equal(t, "clientId1", clientID)
			require.Equal(t, "clientSecret1", clientSecret)
			return "userId1", nil
		},
		CreateOrUpdateAuthInfoFn: func(_ context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
			require.Equal(t, "userId1", userID)
			require.Equal(t, "scope1", scope)
			return &models.AuthInfo{ClientID: clientID, UserID: userID, Scope: scope}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1", ExpiresIn: 3600}, nil
		},
	}
	h := NewClientCredentials(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "accessToken1", result.AccessToken)
	assert.Equal(t, "scope1", result.Scope)
}

func TestClientCredentials_ScopeIsOptional(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(nil),
		GetClientUserIDFn: func(_ context.Context, _, _ string) (string, error) {
			return "userId1", nil
		},
		CreateOrUpdateAuthInfoFn: func(_ context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
			require.Empty(t, scope)
			return &models.AuthInfo{ClientID: clientID, UserID: userID}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1"}, nil
		},
	}
	h := NewClientCredentials(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	assert.Empty(t, result.Scope)
}
