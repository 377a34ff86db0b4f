// Package mock provides a test double implementation of ai.Embedder.
//
// The mock allows tests to run without an external embedding service while
// keeping semantic ranking observable: default vectors are deterministic
// bag-of-words projections, so texts sharing vocabulary get high cosine
// similarity and identical texts get identical vectors.
//
// # Usage in Tests
//
//	embedder := mock.NewMockEmbedder()
//	vector, err := embedder.EmbedText(ctx, "jam satellite communications")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
package mock
