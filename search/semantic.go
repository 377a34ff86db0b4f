package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/sparta/ai"
	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/dataset"
	"github.com/poiesic/sparta/index"
)

// Semantic ranks records by cosine similarity between the query's embedding
// and the prebuilt embedding index. The embedder must be the same one the
// index was built with; vectors from different models are not comparable.
type Semantic struct {
	store    *dataset.Store
	index    *index.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ Searcher = (*Semantic)(nil)

// NewSemantic creates a semantic searcher over a store and its built index.
func NewSemantic(store *dataset.Store, ix *index.Index, embedder ai.Embedder, opts ...Option) (*Semantic, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	c := newConfig(opts...)
	return &Semantic{
		store:    store,
		index:    ix,
		embedder: embedder,
		logger:   c.logger.With("component", "semantic-search"),
	}, nil
}

// Search embeds the query, ranks it against the index, and resolves the
// matched ids back to full records. Ids the store no longer knows are skipped
// with a warning rather than failing the whole query.
func (s *Semantic) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	if topK <= 0 {
		return []*core.SearchResult{}, nil
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches := s.index.Query(vector, topK)

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		record, err := s.store.GetByID(match.RecordID)
		if err != nil {
			s.logger.Warn("indexed record missing from store", "recordID", match.RecordID, "err", err)
			continue
		}
		results = append(results, &core.SearchResult{
			Record: record,
			Score:  match.Score,
		})
	}

	s.logger.Debug("semantic search done", "query", query, "hits", len(results))
	return results, nil
}
