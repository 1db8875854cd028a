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

func TestJWTBearer_MissingAssertion(t *testing.T) {
	dh := &datatest.Handler{Req: tokenRequest(nil)}
	h := NewJWTBearer(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	require.Error(t, err)
	oe, _ := oautherr.From(err)
	assert.Equal(t, oautherr.KindInvalidRequest, oe.Kind())
	assert.Equal(t, "'assertion' not found", oe.Description())
}

func TestJWTBearer_UnknownSubject(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"assertion": "assertion1"}),
		GetUserIDByAssertionJWTFn: func(_ context.Context, clientID, assertion string) (*models.UserData, error) {
			return &models.UserData{}, nil
		},
	}
	h := NewJWTBearer(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindInvalidGrant))
}

func TestJWTBearer_Success(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"assertion": "assertion1", "scope": "scope1"}),
		GetUserIDByAssertionJWTFn: func(_ context.Context, clientID, assertion string) (*models.UserData, error) {
			require.Equal(t, "clientId1", clientID)
			require.Equal(t, "assertion1", assertion)
			return &models.UserData{ID: "userId1", Login: "login1", Email: "user1@example.com"}, nil
		},
		CreateOrUpdateAuthInfoFn: func(_ context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
			return &models.AuthInfo{ClientID: clientID, UserID: userID, Scope: scope}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1", ExpiresIn: 3600}, nil
		},
	}
	h := NewJWTBearer(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	assert.Equal(t, "accessToken1", result.AccessToken)
	require.NotNil(t, result.User)
	assert.Equal(t, "userId1", result.User.ID)
	assert.Equal(t, "login1", result.User.Login)
}

func TestSAML2Bearer_AssertionRejected(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"assertion": "assertion1"}),
		GetUserIDByAssertionFn: func(_ context.Context, assertion string) (*models.UserData, error) {
			return nil, oautherr.AccessDenied("assertion rejected")
		},
	}
	h := NewSAML2Bearer(clientcred.NewDefault())

	_, err := h.Handle(context.Background(), dh)
	assert.True(t, oautherr.IsKind(err, oautherr.KindAccessDenied))
}

func TestSAML2Bearer_Success(t *testing.T) {
	dh := &datatest.Handler{
		Req: tokenRequest(map[string]string{"assertion": "assertion1"}),
		GetUserIDByAssertionFn: func(_ context.Context, assertion string) (*models.UserData, error) {
			return &models.UserData{ID: "userId1", Source: "saml2"}, nil
		},
		CreateOrUpdateAuthInfoFn: func(_ context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
			return &models.AuthInfo{ClientID: clientID, UserID: userID}, nil
		},
		CreateOrUpdateAccessTokenFn: func(_ context.Context, _ *models.AuthInfo) (*models.AccessToken, error) {
			return &models.AccessToken{Token: "accessToken1"}, nil
		},
	}
	h := NewSAML2Bearer(clientcred.NewDefault())

	result, err := h.Handle(context.Background(), dh)
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "saml2", result.User.Source)
}
