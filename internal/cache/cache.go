// Package cache abstracts the byte-oriented key/value store the token and
// authorization state lives in.
//
// Drivers:
//   - memory (in-process, for development and tests)
//   - redis (shared, for multi-instance deployments)
package cache

import "time"

// Cache is a small byte-oriented cache. A ttl of 0 means the entry never
// expires on its own.
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
}
