// Package oauth - TokenController handles POST /oauth2/token
package oauth

import (
	"encoding/json"
	"net/http"

	"github.com/tokengate/authcore/endpoint"
	"github.com/tokengate/authcore/internal/http/httpreq"
	"github.com/tokengate/authcore/internal/metrics"
	"github.com/tokengate/authcore/internal/observability/logger"
	"github.com/tokengate/authcore/oautherr"
)

// TokenController bridges HTTP to the token endpoint.
type TokenController struct {
	endpoint *endpoint.Token
}

func NewTokenController(ep *endpoint.Token) *TokenController {
	return &TokenController{endpoint: ep}
}

// Token handles POST /oauth2/token.
func (c *TokenController) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Op("oauth.token"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeOAuthError(w, http.StatusMethodNotAllowed, "invalid_request", "Only POST method is allowed")
		return
	}

	// OAuth forms are small.
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	req := httpreq.Wrap(r)
	grantType := req.Parameter("grant_type")

	result, err := c.endpoint.HandleRequest(ctx, req)
	if err != nil {
		oe := oautherr.Classify(err)
		metrics.TokenRequests.WithLabelValues(grantType, oe.Code()).Inc()
		if oe.Kind() == oautherr.KindServerError {
			log.Error("token exchange failed", logger.GrantType(grantType), logger.Err(err))
		} else {
			log.Info("token request rejected", logger.GrantType(grantType), logger.Err(err))
		}
		writeOAuthError(w, oe.StatusCode(), oe.Code(), oe.Description())
		return
	}

	metrics.TokenRequests.WithLabelValues(grantType, "ok").Inc()
	writeNoStoreJSON(w, http.StatusOK, result)
}

func writeOAuthError(w http.ResponseWriter, status int, errorCode, description string) {
	body := map[string]string{"error": errorCode}
	if description != "" {
		body["error_description"] = description
	}
	writeNoStoreJSON(w, status, body)
}

func writeNoStoreJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
