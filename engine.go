// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sparta

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/sparta/ai"
	"github.com/poiesic/sparta/core"
	"github.com/poiesic/sparta/dataset"
	"github.com/poiesic/sparta/index"
	"github.com/poiesic/sparta/search"
	"github.com/poiesic/sparta/storage"
)

// State tracks how far Engine initialization got. It is set once in New and
// never changes afterwards.
type State int

const (
	StateUninitialized State = iota
	StateRecordsLoaded
	StateIndexReady
	StateIndexFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRecordsLoaded:
		return "records_loaded"
	case StateIndexReady:
		return "index_ready"
	case StateIndexFailed:
		return "index_failed"
	default:
		return "unknown"
	}
}

// Engine owns the record store, the optional embedding index, and the search
// strategy selected during construction. Once New returns, the engine is
// read-only and safe for concurrent queries.
type Engine struct {
	store     *dataset.Store
	index     *index.Index
	searcher  search.Searcher
	cacheRepo storage.CacheRepository
	state     State
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	embedder    ai.Embedder
	embedderErr error
	cacheRepo   storage.CacheRepository
	model       string
	keywordOnly bool
	buildOpts   []index.Option
	logger      *slog.Logger
}

// WithEmbedder enables semantic search backed by the given embedder. Without
// one the engine runs keyword-only.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithEmbedderError records that an embedder was wanted but could not be
// constructed. The engine still serves keyword search, but settles in the
// index-failed state instead of plain records-loaded.
func WithEmbedderError(err error) Option {
	return func(o *engineOptions) {
		o.embedderErr = err
	}
}

// WithCacheRepository persists built indexes so later runs over an unchanged
// dataset skip the embedding pass.
func WithCacheRepository(repo storage.CacheRepository) Option {
	return func(o *engineOptions) {
		o.cacheRepo = repo
	}
}

// WithModel records which embedding model built the index. A persisted cache
// from a different model is rejected on load.
func WithModel(model string) Option {
	return func(o *engineOptions) {
		o.model = model
	}
}

// WithBuildOptions forwards extra options to the index build pass, such as
// batch size, retry policy, or progress reporting.
func WithBuildOptions(opts ...index.Option) Option {
	return func(o *engineOptions) {
		o.buildOpts = append(o.buildOpts, opts...)
	}
}

// WithKeywordOnly forces keyword search even when an embedder is configured.
func WithKeywordOnly() Option {
	return func(o *engineOptions) {
		o.keywordOnly = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// New loads the dataset at datasetPath and selects a search strategy. A
// dataset that fails to load is fatal. Anything that goes wrong while
// building or loading the embedding index is not: the engine logs a warning
// and falls back to keyword search.
func New(ctx context.Context, datasetPath string, opts ...Option) (*Engine, error) {
	options := &engineOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := dataset.Load(datasetPath)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		store:     store,
		cacheRepo: options.cacheRepo,
		state:     StateRecordsLoaded,
		logger:    options.logger,
	}

	if options.keywordOnly || options.embedder == nil {
		keyword, err := search.NewKeyword(store, search.WithLogger(options.logger))
		if err != nil {
			return nil, err
		}
		engine.searcher = keyword
		if !options.keywordOnly && options.embedderErr != nil {
			engine.state = StateIndexFailed
			engine.logger.Warn("embedder unavailable, falling back to keyword search",
				"records", store.Len(),
				"err", options.embedderErr)
			return engine, nil
		}
		engine.logger.Info("keyword search selected",
			"records", store.Len(),
			"keyword_only", options.keywordOnly)
		return engine, nil
	}

	ix := engine.obtainIndex(ctx, options)
	if ix == nil {
		engine.state = StateIndexFailed
		keyword, err := search.NewKeyword(store, search.WithLogger(options.logger))
		if err != nil {
			return nil, err
		}
		engine.searcher = keyword
		engine.logger.Warn("falling back to keyword search")
		return engine, nil
	}

	semantic, err := search.NewSemantic(store, ix, options.embedder, search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	engine.index = ix
	engine.searcher = semantic
	engine.state = StateIndexReady
	engine.logger.Info("semantic search selected",
		"records", store.Len(),
		"dimension", ix.Dimension(),
		"model", ix.Model())
	return engine, nil
}

// obtainIndex tries the persisted cache first, then a fresh build. Returns
// nil when no usable index could be produced.
func (e *Engine) obtainIndex(ctx context.Context, options *engineOptions) *index.Index {
	fingerprint := e.store.Fingerprint()

	if e.cacheRepo != nil {
		cache, err := e.cacheRepo.LoadCache(ctx)
		switch {
		case err == nil && !e.cacheMatchesModel(cache, options.model):
			e.logger.Warn("persisted cache built by a different model, rebuilding",
				"cached_model", cache.Model,
				"model", options.model)
		case err == nil:
			ix, err := index.FromCache(cache, fingerprint)
			if err == nil {
				e.logger.Info("embedding index restored from cache",
					"records", ix.Len(),
					"model", ix.Model())
				return ix
			}
			e.logger.Warn("persisted cache unusable, rebuilding", "err", err)
		case !errors.Is(err, storage.ErrCacheMissing):
			e.logger.Warn("failed to load embedding cache", "err", err)
		}
	}

	buildOpts := []index.Option{index.WithLogger(e.logger)}
	if options.model != "" {
		buildOpts = append(buildOpts, index.WithModel(options.model))
	}
	buildOpts = append(buildOpts, options.buildOpts...)
	ix, err := index.Build(ctx, e.store, options.embedder, buildOpts...)
	if err != nil {
		e.logger.Warn("embedding index build failed", "err", err)
		return nil
	}

	if e.cacheRepo != nil {
		if err := e.cacheRepo.SaveCache(ctx, ix.Snapshot()); err != nil {
			e.logger.Warn("failed to persist embedding cache", "err", err)
		}
	}
	return ix
}

// cacheMatchesModel rejects a cache built by a different embedding model.
// An empty configured model accepts whatever was persisted.
func (e *Engine) cacheMatchesModel(cache *core.EmbeddingCache, model string) bool {
	if model == "" || cache.Model == "" {
		return true
	}
	return cache.Model == model
}

// Search runs the selected strategy and returns at most topK ranked results.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return e.searcher.Search(ctx, query, topK)
}

// Related returns up to topK records most similar to the record with the
// given id, never including the record itself. With a built index the stored
// vector is ranked directly; otherwise the record's own text is run through
// the selected search strategy.
func (e *Engine) Related(ctx context.Context, id string, topK int) ([]*core.SearchResult, error) {
	record, err := e.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []*core.SearchResult{}, nil
	}

	if e.index != nil {
		matches, err := e.index.QueryByID(id, topK)
		if err != nil {
			return nil, err
		}
		results := make([]*core.SearchResult, 0, len(matches))
		for _, match := range matches {
			matched, err := e.store.GetByID(match.RecordID)
			if err != nil {
				e.logger.Warn("indexed record missing from store", "recordID", match.RecordID, "err", err)
				continue
			}
			results = append(results, &core.SearchResult{Record: matched, Score: match.Score})
		}
		return results, nil
	}

	results, err := e.searcher.Search(ctx, record.FullText, topK+1)
	if err != nil {
		return nil, err
	}
	related := make([]*core.SearchResult, 0, topK)
	for _, result := range results {
		if result.Record.ID == id {
			continue
		}
		related = append(related, result)
		if len(related) == topK {
			break
		}
	}
	return related, nil
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Store() *dataset.Store {
	return e.store
}

// Index returns the embedding index, or nil when the engine runs
// keyword-only.
func (e *Engine) Index() *index.Index {
	return e.index
}

func (e *Engine) Close() error {
	if e.cacheRepo == nil {
		return nil
	}
	if err := e.cacheRepo.Close(); err != nil {
		e.logger.Error("error closing cache repository", "err", err)
		return err
	}
	return nil
}
