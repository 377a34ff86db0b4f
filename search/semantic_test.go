package search

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/sparta/ai/mock"
	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/dataset"
	"github.com/poiesic/sparta/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func semanticSearcher(t *testing.T) (*dataset.Store, *mock.MockEmbedder, *Semantic) {
	t.Helper()
	store, err := dataset.NewTestStore()
	require.NoError(t, err)
	embedder := mock.NewMockEmbedder()
	idx, err := index.Build(context.Background(), store, embedder)
	require.NoError(t, err)
	s, err := NewSemantic(store, idx, embedder)
	require.NoError(t, err)
	return store, embedder, s
}

func TestNewSemantic(t *testing.T) {
	store, err := dataset.NewTestStore()
	require.NoError(t, err)
	embedder := mock.NewMockEmbedder()
	idx, err := index.Build(context.Background(), store, embedder)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		s, err := NewSemantic(store, idx, embedder)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSemantic(nil, idx, embedder)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewSemantic(store, nil, embedder)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSemantic(store, idx, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestSemanticSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("exact name ranks first", func(t *testing.T) {
		_, _, s := semanticSearcher(t)
		results, err := s.Search(ctx, "Jamming", 3)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "EX-0016", results[0].Record.ID)
	})

	t.Run("scores non-increasing and bounded by topK", func(t *testing.T) {
		_, _, s := semanticSearcher(t)
		results, err := s.Search(ctx, "intercepting downlink communications", 4)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), 4)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})

	t.Run("results carry resolved records", func(t *testing.T) {
		store, _, s := semanticSearcher(t)
		results, err := s.Search(ctx, "supply chain compromise", 3)
		require.NoError(t, err)
		for _, result := range results {
			record, err := store.GetByID(result.Record.ID)
			require.NoError(t, err)
			assert.Same(t, record, result.Record)
		}
	})

	t.Run("topK zero yields empty result", func(t *testing.T) {
		_, _, s := semanticSearcher(t)
		results, err := s.Search(ctx, "Jamming", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("embedder failure propagates", func(t *testing.T) {
		_, embedder, s := semanticSearcher(t)
		wantErr := errors.New("embedding backend down")
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, wantErr
		}
		_, err := s.Search(ctx, "Jamming", 3)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("unknown index ids are skipped", func(t *testing.T) {
		full, err := dataset.NewTestStore()
		require.NoError(t, err)
		embedder := mock.NewMockEmbedder()
		idx, err := index.Build(ctx, full, embedder)
		require.NoError(t, err)

		// A store missing EX-0016.01 while the index still carries it.
		var kept []*core.Record
		for _, r := range full.Records() {
			if r.ID != "EX-0016.01" {
				kept = append(kept, r)
			}
		}
		partial, err := dataset.New(kept)
		require.NoError(t, err)

		s, err := NewSemantic(partial, idx, embedder)
		require.NoError(t, err)
		results, err := s.Search(ctx, "Uplink Jamming", full.Len())
		require.NoError(t, err)
		for _, result := range results {
			assert.NotEqual(t, "EX-0016.01", result.Record.ID)
		}
	})
}
