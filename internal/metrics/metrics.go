// Package metrics defines the Prometheus metrics the OAuth2 endpoints emit.
// Standalone package so HTTP and storage layers can record without cycles.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TokenRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oauth_token_requests_total",
		Help: "Token endpoint requests by grant type and result error code (\"ok\" on success)",
	}, []string{"grant_type", "result"})

	ResourceRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oauth_resource_requests_total",
		Help: "Protected-resource validations by result error code (\"ok\" on success)",
	}, []string{"result"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Register registers all metrics on the given registry (default if nil) and
// returns the /metrics handler.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{TokenRequests, ResourceRequests, RequestDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return promhttp.Handler(), nil
}
