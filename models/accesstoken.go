package models

import "time"

// AccessToken is a bearer credential granting access to protected resources.
type AccessToken struct {
	AuthID    string
	Token     string
	CreatedAt time.Time
	ExpiresIn int64 // seconds; 0 means the token never expires
}

// ExpiredAt reports whether the token is expired at the given instant.
// Expiry is evaluated lazily at validation time, never by active eviction.
func (t *AccessToken) ExpiredAt(now time.Time) bool {
	if t.ExpiresIn <= 0 {
		return false
	}
	return now.After(t.CreatedAt.Add(time.Duration(t.ExpiresIn) * time.Second))
}
