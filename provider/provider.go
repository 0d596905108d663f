// Package provider defines the backend capability a cachestore.Store is built on.
//
// The shape follows the Redis commands the store needs: GET, SET [EX], DEL,
// KEYS pattern and SCAN cursor MATCH pattern COUNT n. Patterns use the Redis
// glob dialect ('*', '?', '[...]', '[^...]', '\' escapes); providers that are
// not Redis must match that dialect (see internal/keyspace.Compile).
//
// Providers MUST be byte-for-byte transparent: Get returns exactly the bytes
// previously passed to Set for the key.
package provider

import (
	"context"
	"time"
)

// Provider is a byte store with TTLs and pattern enumeration.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means no expiry.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Keys returns every key matching pattern in one call.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Scan returns one page of keys matching pattern starting at cursor and the
	// cursor for the next page; a returned cursor of 0 ends the pass.
	// count is a hint; pages may be shorter or longer.
	Scan(ctx context.Context, cursor uint64, pattern string, count int64) (keys []string, next uint64, err error)

	// Close releases resources.
	Close(ctx context.Context) error
}
