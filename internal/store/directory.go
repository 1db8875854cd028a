package store

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Client is a registered OAuth2 client.
type Client struct {
	ID          string
	SecretHash  string
	RedirectURI string

	// GrantTypes the client may use. Empty means all grant types.
	GrantTypes []string

	// JWTKey is the shared HMAC key JWT bearer assertions from this client
	// are signed with. Nil disables the assertion grant for the client.
	JWTKey []byte

	Enabled bool
}

// AllowsGrant reports whether the client may use the grant type.
func (c *Client) AllowsGrant(grantType string) bool {
	if len(c.GrantTypes) == 0 {
		return true
	}
	for _, g := range c.GrantTypes {
		if g == grantType {
			return true
		}
	}
	return false
}

// User is a resource owner.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Name         string
	Enabled      bool
}

// Directory resolves clients and users. Lookups return (nil, nil) when the
// record does not exist; a non-nil error means the backend itself failed.
type Directory interface {
	Client(ctx context.Context, clientID string) (*Client, error)
	UserByID(ctx context.Context, id string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)

	// UserByCustomToken resolves a provider-issued login token.
	UserByCustomToken(ctx context.Context, token string) (*User, error)

	// UserByAssertion resolves a registered SAML2 bearer assertion.
	UserByAssertion(ctx context.Context, assertion string) (*User, error)
}

// HashSecret bcrypt-hashes a client secret or user password for seeding.
func HashSecret(s string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func secretMatches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
