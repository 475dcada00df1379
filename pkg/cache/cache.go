// Package cache provides artifact caching for document builds.
//
// Builds are pure functions of their inputs, so every expensive stage
// output can be cached under a content hash: rendered figures under the
// hash of their spec and style bundle, finished structural documents
// under the hash of the whole configuration. Backends cover local CLI
// use ([FileCache]), shared deployments ([RedisCache]) and disabled
// caching ([NullCache]).
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend contract. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per artifact class. Figures are pure content hashes and
// could live forever; the TTLs bound disk growth, not correctness.
const (
	FigureTTL   = 30 * 24 * time.Hour
	DocumentTTL = 7 * 24 * time.Hour
)
