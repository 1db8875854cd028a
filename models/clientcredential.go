package models

// ClientCredential is the client id and secret extracted from a request.
// Both values are untrusted until the storage contract validates them.
type ClientCredential struct {
	ClientID     string
	ClientSecret string
}
