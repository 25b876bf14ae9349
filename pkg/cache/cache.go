// Package cache provides pluggable byte caches for generated artifacts.
//
// Generation is deterministic per (config, seed), so rendered artifacts can
// be reused whenever the generation options hash identically. Three
// backends implement the same interface: a file cache for CLI runs, a Redis
// cache for serve mode, and a null cache for tests and --no-cache.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for generation artifacts.
type Keyer interface {
	// ArtifactKey keys one rendered artifact by the content hash of its
	// generation options and the output format.
	ArtifactKey(optionsHash, format string) string
}

// DefaultKeyer builds unscoped artifact keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(optionsHash, format string) string {
	return hashKey("artifact", optionsHash, format)
}
