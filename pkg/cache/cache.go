// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the API server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash of the input plus the
// options that affect the output, so a change to either produces a new key.
// [ScopedKeyer] prefixes every key for namespace isolation.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(docJSON), cache.LayoutKeyOpts{WidthMode: "at_most", Width: 400})
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss or an
	// expired entry; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
