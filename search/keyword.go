package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/dataset"
)

// Keyword scoring weights. The exact values are a fixed, documented choice:
// a match in a record's name must dominate a match in its description, so an
// exact-name query always ranks that record first.
const (
	namePhraseWeight        = 100
	descriptionPhraseWeight = 50
	tokenOverlapWeight      = 10
	partialMatchWeight      = 5
)

// Keyword ranks records by term overlap with the query. It needs nothing but
// the record store, which makes it the fallback strategy when no embedding
// model is available.
type Keyword struct {
	store  *dataset.Store
	logger *slog.Logger
}

var _ Searcher = (*Keyword)(nil)

// NewKeyword creates a keyword searcher over the store.
func NewKeyword(store *dataset.Store, opts ...Option) (*Keyword, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	c := newConfig(opts...)
	return &Keyword{
		store:  store,
		logger: c.logger.With("component", "keyword-search"),
	}, nil
}

// Score computes the keyword relevance of a record for a query. Always ≥ 0;
// zero means the record shares nothing with the query.
func (k *Keyword) Score(query string, record *core.Record) float32 {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return 0
	}

	var score float32

	// Exact phrase match in name
	if strings.Contains(strings.ToLower(record.Name), queryLower) {
		score += namePhraseWeight
	}

	// Exact phrase match in description
	if strings.Contains(strings.ToLower(record.Description), queryLower) {
		score += descriptionPhraseWeight
	}

	fullTextLower := strings.ToLower(record.FullText)
	recordTokens := tokenSet(fullTextLower)

	// Distinct query tokens only: repeating a word in the query must not
	// inflate its score.
	seen := make(map[string]bool)
	for _, token := range tokenizeAndFilter(queryLower) {
		if seen[token] {
			continue
		}
		seen[token] = true

		// Whole-token overlap
		if recordTokens[token] {
			score += tokenOverlapWeight
		}
		// Partial match anywhere in the text, so "jam" still hits "jamming"
		if strings.Contains(fullTextLower, token) {
			score += partialMatchWeight
		}
	}

	return score
}

// Search returns up to topK records with non-zero scores, best first.
// Ties keep dataset order so output is deterministic.
func (k *Keyword) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	if topK <= 0 {
		return []*core.SearchResult{}, nil
	}

	results := make([]*core.SearchResult, 0, topK)
	for _, record := range k.store.Records() {
		score := k.Score(query, record)
		if score > 0 {
			results = append(results, &core.SearchResult{Record: record, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	k.logger.Debug("keyword search done", "query", query, "hits", len(results))
	return results, nil
}
