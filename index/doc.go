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


// Package index builds and queries the embedding index for the SPARTA catalog.
//
// An Index holds one vector per record, produced by embedding each record's
// full text. It is built in a single batch pass and immutable afterwards:
// when the underlying record store changes, the index is rebuilt wholesale,
// never patched incrementally.
//
// Queries rank stored vectors by cosine similarity against a query vector.
//
// A built index can be snapshotted to a core.EmbeddingCache for persistence
// and restored from one; restoring validates the cache's fingerprint against
// the current record store so stale vectors are never served silently.
package index
