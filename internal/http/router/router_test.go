package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokengate/authcore/endpoint"
	"github.com/tokengate/authcore/internal/cache/memory"
	"github.com/tokengate/authcore/internal/http/controllers/oauth"
	"github.com/tokengate/authcore/internal/http/controllers/resource"
	"github.com/tokengate/authcore/internal/http/router"
	"github.com/tokengate/authcore/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := store.NewMemoryDirectory()
	require.NoError(t, dir.AddClient(store.Client{ID: "cli1", Enabled: true}, "s3cret"))
	require.NoError(t, dir.AddUser(store.User{ID: "u1", Username: "jdoe", Enabled: true}, "hunter2"))
	st := store.New(store.Deps{Directory: dir, Cache: memory.New(time.Minute)})

	r := router.New(router.Deps{
		Token:    oauth.NewTokenController(endpoint.NewToken(endpoint.TokenDeps{Factory: st})),
		Resource: resource.NewController(endpoint.NewProtectedResource(endpoint.ProtectedResourceDeps{Factory: st})),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, url string, form url.Values) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestTokenEndpointPasswordGrant(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/oauth2/token", url.Values{
		"grant_type":    {"password"},
		"client_id":     {"cli1"},
		"client_secret": {"s3cret"},
		"username":      {"jdoe"},
		"password":      {"hunter2"},
		"scope":         {"read"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "Bearer", body["token_type"])
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.EqualValues(t, 3600, body["expires_in"])
	assert.Equal(t, "read", body["scope"])
}

func TestTokenEndpointMissingGrantType(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/oauth2/token", url.Values{
		"client_id":     {"cli1"},
		"client_secret": {"s3cret"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", body["error"])
	assert.Equal(t, "'grant_type' not found", body["error_description"])
}

func TestTokenEndpointBadClientSecret(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postForm(t, srv.URL+"/oauth2/token", url.Values{
		"grant_type":    {"password"},
		"client_id":     {"cli1"},
		"client_secret": {"wrong"},
		"username":      {"jdoe"},
		"password":      {"hunter2"},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_client", body["error"])
}

func TestTokenEndpointRejectsGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/oauth2/token")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestProtectedResource(t *testing.T) {
	srv := newTestServer(t)

	_, body := postForm(t, srv.URL+"/oauth2/token", url.Values{
		"grant_type":    {"password"},
		"client_id":     {"cli1"},
		"client_secret": {"s3cret"},
		"username":      {"jdoe"},
		"password":      {"hunter2"},
		"scope":         {"read"},
	})
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "u1", me["remote_user"])
	assert.Equal(t, "cli1", me["client_id"])
	assert.Equal(t, "read", me["scope"])
}

func TestProtectedResourceRejectsBadToken(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), `error="invalid_token"`)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
