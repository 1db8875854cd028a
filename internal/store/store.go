// Package store is the reference storage backend: a Directory of clients
// and users plus cache-backed authorization state (codes, refresh tokens,
// access tokens). It produces one request-scoped data.Handler per inbound
// request.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tokengate/authcore/data"
	"github.com/tokengate/authcore/internal/cache"
	"github.com/tokengate/authcore/internal/observability/logger"
	tokens "github.com/tokengate/authcore/internal/security/token"
	"github.com/tokengate/authcore/models"
)

const (
	keyAuthInfo     = "ai:"      // + auth id -> authInfo JSON
	keyAuthPair     = "ai:pair:" // + clientID|userID -> auth id
	keyCode         = "code:"    // + code -> auth id (one-time, TTL)
	keyRefresh      = "rt:"      // + sha256(refresh) -> auth id
	keyAccessToken  = "at:"      // + sha256(token) -> accessToken JSON
	keyTokenByAuth  = "at:auth:" // + auth id -> sha256(token)
	opaqueTokenSize = 32
)

// Options tune token lifetimes. Zero values fall back to defaults.
type Options struct {
	AccessTokenTTL time.Duration
	CodeTTL        time.Duration
	Now            func() time.Time
}

// Deps carries the Store's collaborators.
type Deps struct {
	Directory Directory
	Cache     cache.Cache
	Options   Options
}

// Store implements data.HandlerFactory over a Directory and a Cache.
type Store struct {
	dir   Directory
	cache cache.Cache
	opts  Options
}

func New(d Deps) *Store {
	o := d.Options
	if o.AccessTokenTTL <= 0 {
		o.AccessTokenTTL = time.Hour
	}
	if o.CodeTTL <= 0 {
		o.CodeTTL = 10 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Store{dir: d.Directory, cache: d.Cache, opts: o}
}

// Create returns the Handler scoped to one inbound request.
func (s *Store) Create(_ context.Context, req models.Request) (data.Handler, error) {
	return &requestHandler{s: s, req: req}, nil
}

// IssueCode mints a one-time authorization code for a client/user pair.
// The authorize endpoint calls this after the resource owner consents.
func (s *Store) IssueCode(ctx context.Context, clientID, userID, scope, redirectURI string) (*models.AuthInfo, error) {
	cl, err := s.dir.Client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if cl == nil || !cl.Enabled {
		return nil, fmt.Errorf("store: unknown client %q", clientID)
	}
	ai, err := s.upsertAuthInfo(ctx, clientID, userID, scope)
	if err != nil {
		return nil, err
	}
	code, err := tokens.GenerateOpaque(opaqueTokenSize)
	if err != nil {
		return nil, err
	}
	ai.Code = code
	if redirectURI != "" {
		ai.RedirectURI = redirectURI
	} else {
		ai.RedirectURI = cl.RedirectURI
	}
	if err := s.putAuthInfo(ai); err != nil {
		return nil, err
	}
	s.cache.Set(keyCode+code, []byte(ai.ID), s.opts.CodeTTL)
	return ai, nil
}

func (s *Store) upsertAuthInfo(ctx context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
	pair := keyAuthPair + clientID + "|" + userID

	var ai *models.AuthInfo
	if b, ok := s.cache.Get(pair); ok {
		ai, _ = s.getAuthInfo(string(b))
	}
	if ai == nil {
		ai = &models.AuthInfo{
			ID:       uuid.NewString(),
			ClientID: clientID,
			UserID:   userID,
		}
	}
	ai.Scope = scope
	ai.CreatedAt = s.opts.Now()

	// Rotate the refresh token on every (re)authorization.
	if ai.RefreshToken != "" {
		s.cache.Delete(keyRefresh + tokens.SHA256Base64URL(ai.RefreshToken))
	}
	rt, err := tokens.GenerateOpaque(opaqueTokenSize)
	if err != nil {
		return nil, err
	}
	ai.RefreshToken = rt

	if err := s.putAuthInfo(ai); err != nil {
		return nil, err
	}
	s.cache.Set(pair, []byte(ai.ID), 0)
	s.cache.Set(keyRefresh+tokens.SHA256Base64URL(rt), []byte(ai.ID), 0)

	logger.From(ctx).Debug("authorization upserted",
		logger.ClientID(clientID), logger.Op("store.upsertAuthInfo"))
	return ai, nil
}

func (s *Store) putAuthInfo(ai *models.AuthInfo) error {
	b, err := json.Marshal(ai)
	if err != nil {
		return err
	}
	s.cache.Set(keyAuthInfo+ai.ID, b, 0)
	return nil
}

func (s *Store) getAuthInfo(id string) (*models.AuthInfo, error) {
	b, ok := s.cache.Get(keyAuthInfo + id)
	if !ok {
		return nil, nil
	}
	var ai models.AuthInfo
	if err := json.Unmarshal(b, &ai); err != nil {
		return nil, err
	}
	return &ai, nil
}

// requestHandler is the per-request data.Handler view over the Store.
type requestHandler struct {
	s   *Store
	req models.Request
}

func (h *requestHandler) Request() models.Request { return h.req }

func (h *requestHandler) ValidateClient(ctx context.Context, clientID, clientSecret, grantType string) (bool, error) {
	cl, err := h.s.dir.Client(ctx, clientID)
	if err != nil {
		return false, err
	}
	if cl == nil || !cl.Enabled {
		return false, nil
	}
	if !secretMatches(cl.SecretHash, clientSecret) {
		return false, nil
	}
	return grantType == "" || cl.AllowsGrant(grantType), nil
}

func (h *requestHandler) GetUserID(ctx context.Context, username, password string) (string, error) {
	u, err := h.s.dir.UserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !u.Enabled || !secretMatches(u.PasswordHash, password) {
		return "", nil
	}
	return u.ID, nil
}

func (h *requestHandler) GetUserIDByAssertion(ctx context.Context, assertion string) (*models.UserData, error) {
	u, err := h.s.dir.UserByAssertion(ctx, assertion)
	if err != nil {
		return nil, err
	}
	return userData(u), nil
}

func (h *requestHandler) GetUserIDByAssertionJWT(ctx context.Context, clientID, assertion string) (*models.UserData, error) {
	cl, err := h.s.dir.Client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if cl == nil || len(cl.JWTKey) == 0 {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(assertion, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return cl.JWTKey, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}), jwt.WithIssuer(clientID))
	if err != nil {
		logger.From(ctx).Debug("jwt assertion rejected", logger.ClientID(clientID), logger.Err(err))
		return nil, nil
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, nil
	}
	u, err := h.s.dir.UserByID(ctx, sub)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Enabled {
		return nil, nil
	}
	return userData(u), nil
}

func (h *requestHandler) GetUserIDByCustomToken(ctx context.Context, token string) (*models.UserData, error) {
	u, err := h.s.dir.UserByCustomToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return userData(u), nil
}

func (h *requestHandler) CreateOrUpdateAuthInfo(ctx context.Context, clientID, userID, scope string) (*models.AuthInfo, error) {
	cl, err := h.s.dir.Client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if cl == nil || !cl.Enabled {
		return nil, nil
	}
	return h.s.upsertAuthInfo(ctx, clientID, userID, scope)
}

func (h *requestHandler) CreateOrUpdateAccessToken(ctx context.Context, authInfo *models.AuthInfo) (*models.AccessToken, error) {
	// Revoke the token previously minted for this authorization, if any.
	if old, ok := h.s.cache.Get(keyTokenByAuth + authInfo.ID); ok {
		h.s.cache.Delete(keyAccessToken + string(old))
	}

	raw, err := tokens.GenerateOpaque(opaqueTokenSize)
	if err != nil {
		return nil, err
	}
	hashed := tokens.SHA256Base64URL(raw)

	at := &models.AccessToken{
		AuthID:    authInfo.ID,
		Token:     hashed,
		CreatedAt: h.s.opts.Now(),
		ExpiresIn: int64(h.s.opts.AccessTokenTTL / time.Second),
	}
	b, err := json.Marshal(at)
	if err != nil {
		return nil, err
	}
	h.s.cache.Set(keyAccessToken+hashed, b, h.s.opts.AccessTokenTTL)
	h.s.cache.Set(keyTokenByAuth+authInfo.ID, []byte(hashed), 0)

	logger.From(ctx).Debug("access token minted",
		logger.ClientID(authInfo.ClientID), logger.Op("store.CreateOrUpdateAccessToken"))

	// Callers see the raw token; only its digest is stored.
	at.Token = raw
	return at, nil
}

func (h *requestHandler) GetAuthInfoByCode(ctx context.Context, code string) (*models.AuthInfo, error) {
	id, ok := h.s.cache.Get(keyCode + code)
	if !ok {
		return nil, nil
	}
	// Authorization codes are single use.
	h.s.cache.Delete(keyCode + code)

	ai, err := h.s.getAuthInfo(string(id))
	if err != nil || ai == nil {
		return ai, err
	}
	if ai.Code != code {
		return nil, nil
	}
	return ai, nil
}

func (h *requestHandler) GetAuthInfoByRefreshToken(ctx context.Context, refreshToken string) (*models.AuthInfo, error) {
	id, ok := h.s.cache.Get(keyRefresh + tokens.SHA256Base64URL(refreshToken))
	if !ok {
		return nil, nil
	}
	ai, err := h.s.getAuthInfo(string(id))
	if err != nil || ai == nil {
		return ai, err
	}
	if ai.RefreshToken != refreshToken {
		return nil, nil
	}
	return ai, nil
}

func (h *requestHandler) GetAuthInfoByID(ctx context.Context, id string) (*models.AuthInfo, error) {
	return h.s.getAuthInfo(id)
}

func (h *requestHandler) GetClientUserID(ctx context.Context, clientID, clientSecret string) (string, error) {
	ok, err := h.ValidateClient(ctx, clientID, clientSecret, "client_credentials")
	if err != nil || !ok {
		return "", err
	}
	return "client:" + clientID, nil
}

func (h *requestHandler) ValidateClientByID(ctx context.Context, clientID string) (bool, error) {
	cl, err := h.s.dir.Client(ctx, clientID)
	if err != nil {
		return false, err
	}
	return cl != nil && cl.Enabled, nil
}

func (h *requestHandler) ValidateUserByID(ctx context.Context, userID string) (bool, error) {
	// Client-credentials authorizations carry a synthetic client user.
	if cid, ok := strings.CutPrefix(userID, "client:"); ok {
		return h.ValidateClientByID(ctx, cid)
	}
	u, err := h.s.dir.UserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u != nil && u.Enabled, nil
}

func (h *requestHandler) GetAccessToken(ctx context.Context, token string) (*models.AccessToken, error) {
	b, ok := h.s.cache.Get(keyAccessToken + tokens.SHA256Base64URL(token))
	if !ok {
		return nil, nil
	}
	var at models.AccessToken
	if err := json.Unmarshal(b, &at); err != nil {
		return nil, err
	}
	at.Token = token
	return &at, nil
}

func userData(u *User) *models.UserData {
	if u == nil || !u.Enabled {
		return nil
	}
	return &models.UserData{
		ID:    u.ID,
		Login: u.Username,
		Email: u.Email,
	}
}
