package search

import (
	"context"
	"testing"

	"github.com/poiesic/sparta/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordSearcher(t *testing.T) (*dataset.Store, *Keyword) {
	t.Helper()
	store, err := dataset.NewTestStore()
	require.NoError(t, err)
	k, err := NewKeyword(store)
	require.NoError(t, err)
	return store, k
}

func TestNewKeyword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		_, k := keywordSearcher(t)
		assert.NotNil(t, k)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewKeyword(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})
}

func TestKeywordScore(t *testing.T) {
	store, k := keywordSearcher(t)

	jamming, err := store.GetByID("EX-0016")
	require.NoError(t, err)
	supplyChain, err := store.GetByID("IA-0001")
	require.NoError(t, err)

	t.Run("name match dominates description match", func(t *testing.T) {
		// "Jamming" appears in EX-0016's name; "supply chain" only in IA-0001's
		// name and description. Name hits must outweigh anything a
		// description-only hit can reach.
		nameHit := k.Score("Jamming", jamming)
		descriptionOnly := k.Score("manipulate prior launch", supplyChain)
		assert.Greater(t, nameHit, descriptionOnly)
	})

	t.Run("unrelated query scores zero", func(t *testing.T) {
		assert.Zero(t, k.Score("quantum blockchain cooking", jamming))
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		assert.Zero(t, k.Score("   ", jamming))
	})

	t.Run("repeated query tokens count once", func(t *testing.T) {
		// "satellite" overlaps one full-text token of EX-0016; repeating it
		// must not stack the per-token bonuses.
		doubled := k.Score("satellite satellite", jamming)
		assert.Equal(t, float32(tokenOverlapWeight+partialMatchWeight), doubled)
		assert.Equal(t, doubled, k.Score("satellite satellite satellite", jamming))
	})

	t.Run("never negative", func(t *testing.T) {
		for _, record := range store.Records() {
			assert.GreaterOrEqual(t, k.Score("jam satellite", record), float32(0))
		}
	})
}

func TestKeywordSearch(t *testing.T) {
	store, k := keywordSearcher(t)
	ctx := context.Background()

	t.Run("exact name ranks first", func(t *testing.T) {
		results, err := k.Search(ctx, "Jamming", 5)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "EX-0016", results[0].Record.ID)
	})

	t.Run("related terms find the record", func(t *testing.T) {
		results, err := k.Search(ctx, "jam satellite communications", 5)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "EX-0016", results[0].Record.ID)
	})

	t.Run("zero-score records are excluded", func(t *testing.T) {
		results, err := k.Search(ctx, "supply chain", 10)
		require.NoError(t, err)
		for _, result := range results {
			assert.Greater(t, result.Score, float32(0))
		}
	})

	t.Run("scores non-increasing and bounded by topK", func(t *testing.T) {
		results, err := k.Search(ctx, "spacecraft communications", 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), 3)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})

	t.Run("ties keep dataset order", func(t *testing.T) {
		// "Eavesdropping" hits both REC-0005 and EXF-0003 by name; REC-0005
		// comes first in the dataset.
		results, err := k.Search(ctx, "Eavesdropping", 5)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(results), 2)
		assert.Equal(t, "REC-0005", results[0].Record.ID)
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		results, err := k.Search(ctx, "quantum blockchain cooking", 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("topK zero yields empty result", func(t *testing.T) {
		results, err := k.Search(ctx, "Jamming", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("topK larger than matches", func(t *testing.T) {
		results, err := k.Search(ctx, "Jamming", 100)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), store.Len())
	})
}

func TestTokenizeAndFilter(t *testing.T) {
	t.Run("lowercases and trims punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"jamming", "satellite"}, tokenizeAndFilter("Jamming, Satellite!"))
	})

	t.Run("drops stop words", func(t *testing.T) {
		assert.Equal(t, []string{"attackers", "jam", "signals"},
			tokenizeAndFilter("How can attackers jam the signals"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, tokenizeAndFilter("  "))
	})
}
