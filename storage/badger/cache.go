package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/storage"
)

// CacheRepository implements storage.CacheRepository on a BadgerDB backend.
type CacheRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CacheRepository = (*CacheRepository)(nil)

// NewCacheRepository creates a BadgerDB-backed cache repository.
//
// Returns storage.CacheRepository interface to enforce abstraction.
func NewCacheRepository(backend *Backend) (storage.CacheRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &CacheRepository{
		backend: backend,
		logger:  slog.Default().With("component", "badger-cache"),
	}, nil
}

// LoadCache reads the cache metadata and every vector it references.
func (r *CacheRepository) LoadCache(ctx context.Context) (*core.EmbeddingCache, error) {
	var cache *core.EmbeddingCache

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(cacheMetaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrCacheMissing
		}
		if err != nil {
			return err
		}

		err = item.Value(func(val []byte) error {
			cache, err = unmarshalCacheMeta(val)
			return err
		})
		if err != nil {
			return err
		}

		cache.Vectors = make([][]float32, len(cache.RecordIDs))
		for i, id := range cache.RecordIDs {
			item, err := tx.Get(makeVectorKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: vector for %s", storage.ErrTruncatedData, id)
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				cache.Vectors[i], err = storage.UnmarshalVector(val)
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	r.logger.Debug("embedding cache loaded", "records", len(cache.RecordIDs))
	return cache, nil
}

// SaveCache replaces the persisted cache wholesale in one transaction:
// all previous vectors are dropped before the new set is written.
func (r *CacheRepository) SaveCache(ctx context.Context, cache *core.EmbeddingCache) error {
	if cache == nil {
		return storage.ErrNilCache
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteByPrefix(tx, []byte(cacheVectorPrefix+":")); err != nil {
			return err
		}

		if err := tx.Set([]byte(cacheMetaKey), marshalCacheMeta(cache)); err != nil {
			return err
		}

		for i, id := range cache.RecordIDs {
			if err := tx.Set(makeVectorKey(id), storage.MarshalVector(cache.Vectors[i])); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return err
	}

	r.logger.Debug("embedding cache saved", "records", len(cache.RecordIDs))
	return nil
}

// Close closes the repository. The shared backend is closed separately by
// its owner.
func (r *CacheRepository) Close() error {
	return nil
}

// deleteByPrefix removes every key under the given prefix in the transaction.
func deleteByPrefix(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	iter := tx.NewIterator(opts)

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// marshalCacheMeta serializes cache metadata: fingerprint, model, dimension,
// and the ordered record ids. Vectors are stored under their own keys.
func marshalCacheMeta(cache *core.EmbeddingCache) []byte {
	buf := storage.AppendString(nil, cache.Fingerprint)
	buf = storage.AppendString(buf, cache.Model)
	buf = storage.AppendUint32(buf, uint32(cache.Dimension))
	buf = storage.AppendUint32(buf, uint32(len(cache.RecordIDs)))
	for _, id := range cache.RecordIDs {
		buf = storage.AppendString(buf, id)
	}
	return buf
}

// unmarshalCacheMeta deserializes cache metadata. The returned cache has no
// vectors yet; LoadCache fills them from the per-record keys.
func unmarshalCacheMeta(data []byte) (*core.EmbeddingCache, error) {
	cache := &core.EmbeddingCache{}

	fingerprint, n, err := storage.ReadString(data)
	if err != nil {
		return nil, err
	}
	cache.Fingerprint = fingerprint
	data = data[n:]

	model, n, err := storage.ReadString(data)
	if err != nil {
		return nil, err
	}
	cache.Model = model
	data = data[n:]

	dimension, n, err := storage.ReadUint32(data)
	if err != nil {
		return nil, err
	}
	cache.Dimension = int(dimension)
	data = data[n:]

	count, n, err := storage.ReadUint32(data)
	if err != nil {
		return nil, err
	}
	data = data[n:]

	cache.RecordIDs = make([]string, count)
	for i := range cache.RecordIDs {
		id, n, err := storage.ReadString(data)
		if err != nil {
			return nil, err
		}
		cache.RecordIDs[i] = id
		data = data[n:]
	}

	return cache, nil
}
