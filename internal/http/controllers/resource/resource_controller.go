// Package resource exposes access-token validation to HTTP handlers: a
// middleware that authenticates bearer requests and a small echo endpoint.
package resource

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tokengate/authcore/endpoint"
	"github.com/tokengate/authcore/internal/http/httpreq"
	"github.com/tokengate/authcore/internal/metrics"
	"github.com/tokengate/authcore/internal/observability/logger"
	"github.com/tokengate/authcore/oautherr"
)

type authKey struct{}

// FromContext returns the authorization established by RequireToken.
func FromContext(ctx context.Context) (*endpoint.Response, bool) {
	v, ok := ctx.Value(authKey{}).(*endpoint.Response)
	return v, ok
}

// Controller guards resource routes with the protected-resource validator.
type Controller struct {
	endpoint *endpoint.ProtectedResource
}

func NewController(ep *endpoint.ProtectedResource) *Controller {
	return &Controller{endpoint: ep}
}

// RequireToken validates the bearer token and stores the authorization in
// the request context. Failures answer per RFC 6750.
func (c *Controller) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := c.endpoint.HandleRequest(ctx, httpreq.Wrap(r))
		if err != nil {
			oe := oautherr.Classify(err)
			metrics.ResourceRequests.WithLabelValues(oe.Code()).Inc()
			logger.From(ctx).Info("resource access rejected",
				logger.Op("resource.requireToken"), logger.Err(err))
			writeBearerError(w, oe)
			return
		}

		metrics.ResourceRequests.WithLabelValues("ok").Inc()
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, authKey{}, resp)))
	})
}

// WhoAmI returns the authorization attached to the presented token.
func (c *Controller) WhoAmI(w http.ResponseWriter, r *http.Request) {
	auth, ok := FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(auth)
}

func writeBearerError(w http.ResponseWriter, oe *oautherr.Error) {
	challenge := `Bearer error="` + oe.Code() + `"`
	if oe.Description() != "" {
		challenge += `, error_description="` + oe.Description() + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(oe.StatusCode())
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             oe.Code(),
		"error_description": oe.Description(),
	})
}
