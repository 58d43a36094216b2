// Package cache provides artifact caching for the CLI.
//
// Rendering through the embedded Graphviz engine is the one genuinely
// expensive stage of the pipeline, so rendered outputs are cached keyed by
// script hash plus every option that shapes the output. Parse, build, and
// eval results are never cached; they are in-memory and cheap to redo.
//
// [FileCache] persists entries on disk for reuse across runs, [NullCache]
// disables caching, and [Keyer] centralizes key construction so every
// component derives keys the same way.
package cache

import (
	"context"
	"time"
)

// TTLArtifact applies to rendered outputs (DOT, SVG). Keys embed the script
// hash and all render options, so entries never serve stale content; the
// TTL only bounds disk growth.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte-oriented cache with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
