package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/poiesic/sparta/core"
)

// Index is an immutable embedding index over an ordered record collection.
// Ids and vectors are parallel slices in dataset order. Build and FromCache
// are the only constructors; once returned, an Index is read-only and safe
// for concurrent queries.
type Index struct {
	ids         []string
	vectors     [][]float32
	dimension   int
	model       string
	fingerprint string
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// Dimension returns the embedding dimension.
func (ix *Index) Dimension() int {
	return ix.dimension
}

// Model returns the name of the embedding model the vectors were built with.
func (ix *Index) Model() string {
	return ix.model
}

// Fingerprint returns the record store fingerprint the index was built from.
func (ix *Index) Fingerprint() string {
	return ix.fingerprint
}

// Query ranks all stored vectors by cosine similarity to the query vector and
// returns the topK best matches in descending score order. Ties keep dataset
// order. A topK of zero or less yields an empty result.
func (ix *Index) Query(vector []float32, topK int) []core.SimilarityMatch {
	if topK <= 0 || len(ix.ids) == 0 {
		return []core.SimilarityMatch{}
	}

	matches := make([]core.SimilarityMatch, len(ix.ids))
	for i, stored := range ix.vectors {
		matches[i] = core.SimilarityMatch{
			RecordID: ix.ids[i],
			Score:    Cosine(vector, stored),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// QueryByID ranks every other stored vector by cosine similarity to the
// vector stored for id, excluding the record itself. Returns ErrNotIndexed
// when the id has no vector.
func (ix *Index) QueryByID(id string, topK int) ([]core.SimilarityMatch, error) {
	pos := -1
	for i, stored := range ix.ids {
		if stored == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, id)
	}

	if topK <= 0 {
		return []core.SimilarityMatch{}, nil
	}

	matches := make([]core.SimilarityMatch, 0, len(ix.ids)-1)
	for i, stored := range ix.vectors {
		if i == pos {
			continue
		}
		matches = append(matches, core.SimilarityMatch{
			RecordID: ix.ids[i],
			Score:    Cosine(ix.vectors[pos], stored),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Snapshot returns the persistable form of the index.
func (ix *Index) Snapshot() *core.EmbeddingCache {
	ids := make([]string, len(ix.ids))
	copy(ids, ix.ids)

	return &core.EmbeddingCache{
		Fingerprint: ix.fingerprint,
		Model:       ix.model,
		Dimension:   ix.dimension,
		RecordIDs:   ids,
		Vectors:     ix.vectors,
	}
}

// FromCache restores an index from a persisted cache after validating it
// against the current record store's fingerprint. A stale fingerprint,
// id/vector count skew, or ragged dimensions fail with an error wrapping
// ErrCacheInvalid rather than silently serving stale vectors.
func FromCache(cache *core.EmbeddingCache, fingerprint string) (*Index, error) {
	if cache == nil {
		return nil, fmt.Errorf("%w: nil cache", ErrCacheInvalid)
	}
	if cache.Fingerprint != fingerprint {
		return nil, fmt.Errorf("%w: fingerprint mismatch: cached %s, store %s",
			ErrCacheInvalid, cache.Fingerprint, fingerprint)
	}
	if len(cache.RecordIDs) != len(cache.Vectors) {
		return nil, fmt.Errorf("%w: %d record ids but %d vectors",
			ErrCacheInvalid, len(cache.RecordIDs), len(cache.Vectors))
	}

	dimension := cache.Dimension
	for i, vector := range cache.Vectors {
		if dimension == 0 {
			dimension = len(vector)
		}
		if len(vector) != dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d",
				ErrCacheInvalid, i, len(vector), dimension)
		}
	}

	return &Index{
		ids:         cache.RecordIDs,
		vectors:     cache.Vectors,
		dimension:   dimension,
		model:       cache.Model,
		fingerprint: cache.Fingerprint,
	}, nil
}

// Cosine computes the cosine similarity dot(a,b)/(|a|·|b|) of two vectors.
// A zero-magnitude or length-mismatched input yields 0 rather than a
// division failure.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
