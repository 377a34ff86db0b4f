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


// Package ai provides the embedding abstraction used by the semantic search
// engine.
//
// The core search logic depends only on the Embedder interface, never on a
// concrete model client. Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test double with no external dependencies
//
// Embeddings from different models are not comparable, so the same Embedder
// (same model and version) must be used for index building and for queries.
//
// An embedder that cannot be constructed (missing endpoint, missing model)
// is a recoverable condition: callers are expected to fall back to keyword
// search rather than abort.
//
// Constructor return types follow a deliberate pattern: production
// constructors (openai.NewEmbedder) return the ai.Embedder interface to
// enforce abstraction, while test constructors (mock.NewMockEmbedder) return
// the concrete type so tests can inject behavior and assert call counts.
package ai
