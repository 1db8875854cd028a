// Package clientcred extracts the client credential from a token request.
package clientcred

import (
	"encoding/base64"
	"strings"

	"github.com/tokengate/authcore/models"
)

// Fetcher extracts a client id and secret from a request. The output is
// untrusted; the storage contract's ValidateClient decides trust.
type Fetcher interface {
	Fetch(req models.Request) models.ClientCredential
}

// Default reads HTTP Basic authentication first and falls back to the
// client_id / client_secret body parameters.
type Default struct{}

// NewDefault returns the standard fetcher.
func NewDefault() *Default { return &Default{} }

// Fetch implements Fetcher.
func (f *Default) Fetch(req models.Request) models.ClientCredential {
	header := req.Header("Authorization")
	if strings.HasPrefix(header, "Basic ") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
		if err == nil {
			if id, secret, ok := strings.Cut(string(decoded), ":"); ok {
				return models.ClientCredential{ClientID: id, ClientSecret: secret}
			}
		}
	}
	return models.ClientCredential{
		ClientID:     req.Parameter("client_id"),
		ClientSecret: req.Parameter("client_secret"),
	}
}
