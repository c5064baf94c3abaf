// Package storage holds the client-local key-value state that a session lives
// in. A Store plays the part a browser's local storage plays for a web page:
// string keys, string values, and a lifetime tied to a profile rather than a
// process.
package storage

import (
	"context"
)

// Keys under which the session is persisted.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Store is a string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error
}
