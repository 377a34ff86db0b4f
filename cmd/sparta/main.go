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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/sparta"
	"github.com/poiesic/sparta/agent"
	"github.com/poiesic/sparta/ai"
	"github.com/poiesic/sparta/ai/openai"
	"github.com/poiesic/sparta/index"
	"github.com/poiesic/sparta/storage"
	"github.com/poiesic/sparta/storage/badger"
	"github.com/poiesic/sparta/storage/file"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sparta",
		Usage: "Keyword and semantic search over the SPARTA space attack technique catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a single query and print ranked results",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
			{
				Name:      "related",
				Usage:     "List records most similar to a catalog record",
				ArgsUsage: "<record-id>",
				Action:    relatedCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
			{
				Name:   "interactive",
				Usage:  "Answer free-text questions in a read-query-print loop",
				Action: interactiveCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results per query",
						Value:   5,
					},
				),
			},
			{
				Name:   "index",
				Usage:  "Build the embedding index and persist the cache",
				Action: indexCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Print dataset statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the technique dataset JSON file",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that constructs an engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the technique dataset JSON file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Path for the persisted embedding cache (file or BadgerDB directory)",
		},
		&cli.StringFlag{
			Name:  "cache-backend",
			Usage: "Cache backend (file, badger)",
			Value: "file",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.BoolFlag{
			Name:  "keyword-only",
			Usage: "Skip embeddings and use keyword search",
		},
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	engine, cleanup, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := engine.Search(ctx, query, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		record := result.Record
		fmt.Printf("%d. [%s] %s (score %.4f)\n", i+1, record.ID, record.Name, result.Score)
		fmt.Printf("   Tactic: %s\n", record.Tactic)
		if record.ParentName != "" {
			fmt.Printf("   Parent: %s\n", record.ParentName)
		}
		fmt.Printf("   %s\n", record.Description)
	}
	return nil
}

func relatedCommand(c *cli.Context) error {
	ctx := context.Background()

	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return fmt.Errorf("record id is required")
	}

	engine, cleanup, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := engine.Related(ctx, id, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("related lookup failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		record := result.Record
		fmt.Printf("%d. [%s] %s (score %.4f)\n", i+1, record.ID, record.Name, result.Score)
		fmt.Printf("   Tactic: %s\n", record.Tactic)
		fmt.Printf("   %s\n", record.Description)
	}
	return nil
}

func interactiveCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, cleanup, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	qa, err := agent.New(engine, agent.WithTopK(c.Int("top-k")))
	if err != nil {
		return err
	}

	return qa.Interactive(ctx, os.Stdin, os.Stdout)
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Bool("keyword-only") {
		return fmt.Errorf("index command requires embeddings; drop --keyword-only")
	}
	if c.String("cache") == "" {
		return fmt.Errorf("cache path is required")
	}

	engine, cleanup, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	if engine.State() != sparta.StateIndexReady {
		return fmt.Errorf("index build failed, engine state: %s", engine.State())
	}

	ix := engine.Index()
	fmt.Fprintf(os.Stderr, "Indexed %d records (dimension %d, model %s)\n",
		ix.Len(), ix.Dimension(), ix.Model())
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, cleanup, err := newEngineKeywordOnly(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	stats := engine.Store().Stats()
	fmt.Printf("Records: %d (%d techniques, %d sub-techniques)\n",
		stats.TotalEntries, stats.Techniques, stats.SubTechniques)

	names := make([]string, 0, len(stats.Tactics))
	for name := range stats.Tactics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tactic := stats.Tactics[name]
		fmt.Printf("  %-24s %3d techniques %3d sub-techniques\n",
			name, tactic.Techniques, tactic.SubTechniques)
	}
	return nil
}

// newEngine builds an engine from command flags. The returned cleanup closes
// the engine and any storage backend it borrowed.
func newEngine(ctx context.Context, c *cli.Context) (*sparta.Engine, func(), error) {
	opts := []sparta.Option{}

	if c.Bool("keyword-only") {
		opts = append(opts, sparta.WithKeywordOnly())
	} else {
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)
		if err := aiConfig.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
		}

		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			// Missing embedding service degrades to keyword search. The
			// engine records the failure so its state reflects the fallback.
			slog.Default().Warn("embedder unavailable, using keyword search", "err", err)
			opts = append(opts, sparta.WithEmbedderError(err))
		} else {
			opts = append(opts,
				sparta.WithEmbedder(embedder),
				sparta.WithModel(aiConfig.EmbeddingModel))
		}

		var buildOpts []index.Option
		if v := c.Int("batch-size"); v > 0 {
			buildOpts = append(buildOpts, index.WithBatchSize(v))
		}
		if v := c.Int("max-retries"); v > 0 {
			buildOpts = append(buildOpts, index.WithMaxRetries(v))
		}
		if d := c.Duration("retry-delay"); d > 0 {
			buildOpts = append(buildOpts, index.WithRetryDelay(d))
		}
		if v := c.Int("report-interval"); v > 0 {
			buildOpts = append(buildOpts, index.WithProgress(os.Stderr, v))
		}
		if len(buildOpts) > 0 {
			opts = append(opts, sparta.WithBuildOptions(buildOpts...))
		}
	}

	closeBackend := func() {}
	if cachePath := c.String("cache"); cachePath != "" && !c.Bool("keyword-only") {
		repo, closer, err := newCacheRepository(cachePath, c.String("cache-backend"))
		if err != nil {
			return nil, nil, err
		}
		closeBackend = closer
		opts = append(opts, sparta.WithCacheRepository(repo))
	}

	engine, err := sparta.New(ctx, c.String("data"), opts...)
	if err != nil {
		closeBackend()
		return nil, nil, err
	}

	cleanup := func() {
		if err := engine.Close(); err != nil {
			slog.Default().Error("error closing engine", "err", err)
		}
		closeBackend()
	}
	return engine, cleanup, nil
}

func newEngineKeywordOnly(ctx context.Context, c *cli.Context) (*sparta.Engine, func(), error) {
	engine, err := sparta.New(ctx, c.String("data"), sparta.WithKeywordOnly())
	if err != nil {
		return nil, nil, err
	}
	return engine, func() { engine.Close() }, nil
}

func newCacheRepository(path, backendName string) (storage.CacheRepository, func(), error) {
	switch backendName {
	case "file":
		return file.NewCacheRepository(path), func() {}, nil
	case "badger":
		backend, err := badger.OpenBackend(path, false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		repo, err := badger.NewCacheRepository(backend)
		if err != nil {
			backend.Close()
			return nil, nil, err
		}
		closer := func() {
			if err := backend.Close(); err != nil {
				slog.Default().Error("error closing cache database", "err", err)
			}
		}
		return repo, closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q: must be file or badger", backendName)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
