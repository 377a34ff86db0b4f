package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache() *core.EmbeddingCache {
	return &core.EmbeddingCache{
		Fingerprint: "abc123",
		Model:       "all-minilm",
		Dimension:   3,
		RecordIDs:   []string{"EX-0016", "REC-0005"},
		Vectors: [][]float32{
			{0.1, 0.2, 0.3},
			{-0.4, 0.5, -0.6},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparta_embeddings.json.gz")
	repo := NewCacheRepository(path)
	defer repo.Close()

	ctx := context.Background()

	require.NoError(t, repo.SaveCache(ctx, testCache()))

	loaded, err := repo.LoadCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, testCache(), loaded)
}

func TestLoadCacheMissing(t *testing.T) {
	repo := NewCacheRepository(filepath.Join(t.TempDir(), "absent.json.gz"))
	defer repo.Close()

	_, err := repo.LoadCache(context.Background())
	assert.ErrorIs(t, err, storage.ErrCacheMissing)
}

func TestLoadCacheCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0644))

	repo := NewCacheRepository(path)
	defer repo.Close()

	_, err := repo.LoadCache(context.Background())
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
}

func TestSaveCacheReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json.gz")
	repo := NewCacheRepository(path)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.SaveCache(ctx, testCache()))

	updated := testCache()
	updated.Fingerprint = "def456"
	require.NoError(t, repo.SaveCache(ctx, updated))

	loaded, err := repo.LoadCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def456", loaded.Fingerprint)
}

func TestSaveCacheNil(t *testing.T) {
	repo := NewCacheRepository(filepath.Join(t.TempDir(), "cache.json.gz"))
	defer repo.Close()

	assert.ErrorIs(t, repo.SaveCache(context.Background(), nil), storage.ErrNilCache)
}
