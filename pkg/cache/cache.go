// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: stores nothing, for tests and --no-cache
//   - [FileCache]: one JSON file per key, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index
//
// # Keys
//
// A [Keyer] derives keys from a chart document's hash plus the inputs that
// change the output: the environment size for layouts and the output
// format for artifacts. [ScopedKeyer] namespaces keys, e.g. per API client.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the inputs besides the document that change a layout.
type LayoutKeyOpts struct {
	EnvWidth  float64 `json:"env_width"`
	EnvHeight float64 `json:"env_height"`
}

// ArtifactKeyOpts are the inputs besides the layout that change a rendered
// artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Debug  bool    `json:"debug,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey keys a computed chart layout.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey keys a rendered output.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
