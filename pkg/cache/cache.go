// Package cache stores rendered artifacts between runs.
//
// The same document rendered with the same options produces the same
// drawing, differing only in generated element ids. The pipeline therefore
// keys artifacts by a hash of the decoded score plus the render options, and
// consults a [Cache] before formatting and drawing anything.
//
// Two implementations are provided. [FileCache] keeps entries as JSON files
// under a directory (by default [DefaultDir]) and is what the CLI and the
// render server use. [NullCache] never stores anything and backs the
// --no-cache flag and tests.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found. A corrupt or
	// expired entry is reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey is the key of one rendered format of a score.
	ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the score hash together with opts.
func (DefaultKeyer) ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scoreHash, opts)
}
