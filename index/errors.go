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


package index

import "errors"

var (
	// ErrStoreRequired is returned when a record store is not provided.
	ErrStoreRequired = errors.New("record store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrCacheInvalid indicates a persisted embedding cache does not match
	// the current record store: fingerprint mismatch, missing vectors, or a
	// structurally broken snapshot. Recoverable; callers rebuild the index.
	ErrCacheInvalid = errors.New("embedding cache invalid")

	// ErrEmptyBuild indicates an embedder returned the wrong number of
	// vectors during a build pass.
	ErrEmptyBuild = errors.New("embedder returned wrong vector count")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called with
	// maxAttempts <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrNotIndexed is returned when a record id has no vector in the index.
	ErrNotIndexed = errors.New("record not indexed")
)
