package accesstoken

import (
	"regexp"
	"strings"

	"github.com/tokengate/authcore/models"
)

var (
	headerPattern = regexp.MustCompile(`^\s*(OAuth|Bearer)\s+([^\s,]*)`)
	paramPattern  = regexp.MustCompile(`(\S*)\s*=\s*"([^"]*)"`)
)

// AuthHeader extracts the token from an "Authorization: Bearer <token>"
// (or the legacy "OAuth <token>") header. Additional comma-separated
// key="value" pairs after the token are collected into the result params.
type AuthHeader struct{}

// Match implements Fetcher.
func (f *AuthHeader) Match(req models.Request) bool {
	return headerPattern.MatchString(req.Header("Authorization"))
}

// Fetch implements Fetcher.
func (f *AuthHeader) Fetch(req models.Request) *FetchResult {
	header := req.Header("Authorization")
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return &FetchResult{Params: map[string]string{}}
	}
	token := m[2]
	params := map[string]string{}
	for _, part := range strings.Split(header[len(m[0]):], ",") {
		if kv := paramPattern.FindStringSubmatch(part); kv != nil {
			params[kv[1]] = kv[2]
		}
	}
	return &FetchResult{Token: token, Params: params}
}
