package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sparta/ai"
	"github.com/poiesic/sparta/dataset"
)

const defaultBatchSize = 32

// builder holds the knobs for a single build pass.
type builder struct {
	batchSize      int
	poolSize       int
	model          string
	maxRetries     int
	retryDelay     time.Duration
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a build pass.
type Option func(*builder)

// WithBatchSize sets how many records are embedded per embedder call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(b *builder) {
		if size > 0 {
			b.batchSize = size
		}
	}
}

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *builder) {
		if size > 0 {
			b.poolSize = size
		}
	}
}

// WithModel records the embedding model name in the index so persisted caches
// can be tied to the model that produced them.
func WithModel(model string) Option {
	return func(b *builder) {
		b.model = model
	}
}

// WithMaxRetries sets how many times a failed embedding batch is attempted.
// Default is 1, a single attempt with no retry.
func WithMaxRetries(attempts int) Option {
	return func(b *builder) {
		if attempts > 0 {
			b.maxRetries = attempts
		}
	}
}

// WithRetryDelay sets the base delay for exponential backoff between retry
// attempts. Default is 1 second.
func WithRetryDelay(delay time.Duration) Option {
	return func(b *builder) {
		if delay > 0 {
			b.retryDelay = delay
		}
	}
}

// WithProgress reports embedding progress to w every reportInterval records.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(b *builder) {
		if w != nil && reportInterval > 0 {
			b.progressWriter = w
			b.reportInterval = reportInterval
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// Build computes one embedding per record over the store's full texts and
// returns a ready index. Batches are fanned out on a worker pool; the call
// blocks until every batch completes. The build is all-or-nothing: any
// embedding failure discards all work and returns the error, so callers never
// observe a partially built index.
func Build(ctx context.Context, store *dataset.Store, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &builder{
		batchSize:  defaultBatchSize,
		poolSize:   max(runtime.NumCPU()/2, 1),
		maxRetries: 1,
		retryDelay: time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	records := store.Records()
	vectors := make([][]float32, len(records))

	var progress *ProgressTracker
	if b.progressWriter != nil {
		progress = NewProgressTracker(b.progressWriter, len(records), b.reportInterval)
		progress.Start()
	}

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		buildErr error
	)

	for start := 0; start < len(records); start += b.batchSize {
		end := min(start+b.batchSize, len(records))

		texts := make([]string, end-start)
		for i, record := range records[start:end] {
			texts[i] = record.FullText
		}
		offset := start

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			var embedded [][]float32
			err := RetryWithBackoff(ctx, func() error {
				var embedErr error
				embedded, embedErr = embedder.EmbedTexts(ctx, texts)
				if embedErr == nil && len(embedded) != len(texts) {
					embedErr = fmt.Errorf("%w: got %d, want %d", ErrEmptyBuild, len(embedded), len(texts))
				}
				return embedErr
			}, b.maxRetries, b.retryDelay)
			if err != nil {
				mu.Lock()
				if buildErr == nil {
					buildErr = err
				}
				mu.Unlock()
				return
			}

			copy(vectors[offset:], embedded)
			if progress != nil {
				progress.Increment(len(texts))
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if buildErr == nil {
				buildErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if progress != nil && buildErr == nil {
		progress.Finish()
	}

	if buildErr != nil {
		b.logger.Warn("embedding index build failed", "records", len(records), "err", buildErr)
		return nil, buildErr
	}

	dimension := 0
	if len(vectors) > 0 {
		dimension = len(vectors[0])
	}

	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	b.logger.Info("embedding index built",
		"records", len(records), "dimension", dimension, "model", b.model)

	return &Index{
		ids:         ids,
		vectors:     vectors,
		dimension:   dimension,
		model:       b.model,
		fingerprint: store.Fingerprint(),
	}, nil
}
