// Package tokens generates and digests opaque credential strings.
package tokens

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// GenerateOpaque returns a random opaque token (base64url, no padding).
func GenerateOpaque(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SHA256Base64URL returns sha256(s) in base64url without padding, the form
// stored instead of the raw credential.
func SHA256Base64URL(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
