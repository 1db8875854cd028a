// Package router wires the HTTP surface: token endpoint, protected demo
// resource, metrics and health.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tokengate/authcore/internal/http/controllers/health"
	"github.com/tokengate/authcore/internal/http/controllers/oauth"
	"github.com/tokengate/authcore/internal/http/controllers/resource"
	"github.com/tokengate/authcore/internal/http/middlewares"
)

// Deps carries the controllers and extras the router mounts.
type Deps struct {
	Token          *oauth.TokenController
	Resource       *resource.Controller
	MetricsHandler http.Handler
}

// New builds the chi router with the standard middleware chain.
func New(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())

	r.Post("/oauth2/token", d.Token.Token)

	r.Group(func(r chi.Router) {
		r.Use(d.Resource.RequireToken)
		r.Get("/v1/me", d.Resource.WhoAmI)
	})

	hc := health.NewController()
	r.Get("/healthz", hc.Healthz)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}
	return r
}
