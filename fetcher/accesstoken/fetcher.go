// Package accesstoken extracts the bearer token from a protected-resource
// request. Strategies are tried in order; the first one that recognizes the
// request's credential scheme wins.
package accesstoken

import "github.com/tokengate/authcore/models"

// FetchResult carries the extracted token plus any auxiliary parameters the
// credential scheme encoded next to it.
type FetchResult struct {
	Token  string
	Params map[string]string
}

// Fetcher recognizes and extracts one credential scheme.
type Fetcher interface {
	// Match reports whether this fetcher recognizes the request.
	Match(req models.Request) bool

	// Fetch extracts the token. Only called after Match returned true.
	Fetch(req models.Request) *FetchResult
}

// Provider holds the ordered fetcher chain.
type Provider struct {
	fetchers []Fetcher
}

// NewProvider builds a provider over the given fetchers, tried in order.
func NewProvider(fetchers ...Fetcher) *Provider {
	return &Provider{fetchers: fetchers}
}

// NewDefaultProvider tries the Authorization header first, then the request
// parameters.
func NewDefaultProvider() *Provider {
	return NewProvider(&AuthHeader{}, &RequestParameter{})
}

// Get returns the first fetcher that recognizes the request.
func (p *Provider) Get(req models.Request) (Fetcher, bool) {
	for _, f := range p.fetchers {
		if f.Match(req) {
			return f, true
		}
	}
	return nil, false
}
