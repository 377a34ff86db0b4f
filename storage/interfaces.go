package storage

import (
	"context"

	"github.com/poiesic/sparta/core"
)

// CacheRepository persists built embedding indexes between runs so the
// one-time build pass can be skipped when the record store is unchanged.
// SaveCache replaces any previously persisted cache wholesale; caches are
// never patched incrementally.
type CacheRepository interface {
	// LoadCache retrieves the persisted embedding cache.
	// Returns ErrCacheMissing if nothing has been persisted yet.
	LoadCache(ctx context.Context) (*core.EmbeddingCache, error)

	// SaveCache persists the embedding cache, replacing any existing one.
	SaveCache(ctx context.Context, cache *core.EmbeddingCache) error

	// Close closes the repository and releases resources.
	Close() error
}
