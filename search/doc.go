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


// Package search ranks SPARTA catalog records against free-text queries.
//
// Two strategies share the single Searcher contract:
//
//   - Semantic: embeds the query and ranks records by cosine similarity
//     against a prebuilt embedding index
//   - Keyword: term-overlap scoring with no external model dependency
//
// The strategy is selected once at startup based on whether the embedding
// index could be built; it is not re-checked per call. Keyword is the hard
// fallback: it must work with nothing but the record store, so the system
// stays usable when no embedding model is available.
package search
