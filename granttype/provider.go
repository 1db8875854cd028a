package granttype

import "github.com/tokengate/authcore/fetcher/clientcred"

// Grant type identifiers accepted on the token endpoint.
const (
	TypeAuthorizationCode = "authorization_code"
	TypeRefreshToken      = "refresh_token"
	TypeClientCredentials = "client_credentials"
	TypePassword          = "password"
	TypeJWTBearer         = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	TypeSAML2Bearer       = "urn:ietf:params:oauth:grant-type:saml2-bearer"
)

// Provider maps a grant_type value to its handler. The set is closed: an
// unknown grant type is answered with unsupported_grant_type by the caller.
type Provider struct {
	handlers map[string]Handler
}

// NewProvider registers the six standard handlers, all sharing one client
// credential fetcher.
func NewProvider(creds clientcred.Fetcher) *Provider {
	return &Provider{handlers: map[string]Handler{
		TypeAuthorizationCode: NewAuthorizationCode(creds),
		TypeRefreshToken:      NewRefreshToken(creds),
		TypeClientCredentials: NewClientCredentials(creds),
		TypePassword:          NewPassword(creds),
		TypeJWTBearer:         NewJWTBearer(creds),
		TypeSAML2Bearer:       NewSAML2Bearer(creds),
	}}
}

// Handler returns the handler registered for the grant type.
func (p *Provider) Handler(grantType string) (Handler, bool) {
	h, ok := p.handlers[grantType]
	return h, ok
}

// Register adds or replaces a handler, for providers that extend the
// standard set.
func (p *Provider) Register(grantType string, h Handler) {
	p.handlers[grantType] = h
}
