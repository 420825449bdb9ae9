// Package cache provides artifact caching for compiled documents.
//
// Compiling TeX is slow; the same source with the same engine settings
// always produces an equivalent PDF, so compiled artifacts are cached
// keyed by a hash of the source and the compile options.
package cache

import (
	"context"
	"time"
)

// Cache stores binary artifacts under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with an optional TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the compile settings that affect the produced
// artifact. Two compilations with equal source and equal options yield
// the same artifact.
type ArtifactKeyOpts struct {
	Engine        string   `json:"engine"`
	CustomOptions []string `json:"custom_options,omitempty"`
}

// Keyer generates cache keys for the artifact pipeline.
type Keyer interface {
	// SourceKey generates a key for rendered .tex source text.
	SourceKey(docPath string) string
	// ArtifactKey generates a key for a compiled artifact from the
	// source hash and compile options.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SourceKey generates a key for rendered source text.
func (k *DefaultKeyer) SourceKey(docPath string) string {
	return hashKey("source", docPath)
}

// ArtifactKey generates a key for a compiled artifact.
func (k *DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so separate projects sharing a
// cache directory do not collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix prepended to every
// generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SourceKey generates a prefixed source key.
func (k *ScopedKeyer) SourceKey(docPath string) string {
	return k.prefix + k.inner.SourceKey(docPath)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
