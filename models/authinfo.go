package models

import "time"

// AuthInfo is one grant of access from a resource owner (or a client acting
// as itself) to a client application. It is created and mutated only by the
// storage contract; the core reads and forwards it.
type AuthInfo struct {
	ID           string
	ClientID     string
	UserID       string // empty for client-credentials grants
	RedirectURI  string // set only for the authorization-code flow
	Code         string // one-time, cleared after consumption
	RefreshToken string
	Scope        string
	CreatedAt    time.Time
}
