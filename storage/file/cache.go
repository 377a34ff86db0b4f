package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/storage"
)

// CacheRepository persists the embedding cache as one gzip-compressed JSON
// file on disk.
type CacheRepository struct {
	path   string
	logger *slog.Logger
}

var _ storage.CacheRepository = (*CacheRepository)(nil)

// NewCacheRepository creates a file-backed cache repository at path.
// The file need not exist yet; LoadCache reports storage.ErrCacheMissing
// until the first SaveCache.
//
// Returns storage.CacheRepository interface to enforce abstraction.
func NewCacheRepository(path string) storage.CacheRepository {
	return &CacheRepository{
		path:   path,
		logger: slog.Default().With("component", "file-cache"),
	}
}

// LoadCache reads and decompresses the persisted cache.
func (r *CacheRepository) LoadCache(ctx context.Context) (*core.EmbeddingCache, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrCacheMissing, r.path)
		}
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	defer gz.Close()

	var cache core.EmbeddingCache
	if err := json.NewDecoder(gz).Decode(&cache); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	r.logger.Debug("embedding cache loaded", "path", r.path, "records", len(cache.RecordIDs))
	return &cache, nil
}

// SaveCache writes the cache to a temp file in the same directory and renames
// it over the target path.
func (r *CacheRepository) SaveCache(ctx context.Context, cache *core.EmbeddingCache) error {
	if cache == nil {
		return storage.ErrNilCache
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	gz := gzip.NewWriter(tmp)
	if err := json.NewEncoder(gz).Encode(cache); err != nil {
		gz.Close()
		tmp.Close()
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return err
	}

	r.logger.Debug("embedding cache saved", "path", r.path, "records", len(cache.RecordIDs))
	return nil
}

// Close is a no-op for the file repository.
func (r *CacheRepository) Close() error {
	return nil
}
