package models

// UserData is the result of authenticating an end user via password, SAML
// assertion, JWT assertion or custom token. An empty ID means the
// authentication failed. The profile fields are carried through to the
// issuance result for downstream consumption.
type UserData struct {
	ID             string
	ActivationCode string
	Login          string
	Email          string
	Mobile         string
	Source         string
}
