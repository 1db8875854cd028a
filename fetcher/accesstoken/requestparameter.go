package accesstoken

import "github.com/tokengate/authcore/models"

// RequestParameter extracts the token from the access_token request
// parameter, or the legacy oauth_token parameter.
type RequestParameter struct{}

// Match implements Fetcher.
func (f *RequestParameter) Match(req models.Request) bool {
	return req.Parameter("access_token") != "" || req.Parameter("oauth_token") != ""
}

// Fetch implements Fetcher.
func (f *RequestParameter) Fetch(req models.Request) *FetchResult {
	token := req.Parameter("access_token")
	if token == "" {
		token = req.Parameter("oauth_token")
	}
	return &FetchResult{Token: token, Params: map[string]string{}}
}
