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


// Package storage provides persistence for the embedding cache.
//
// The package defines the CacheRepository interface that decouples cache
// persistence from the index logic, so different backends can be used
// interchangeably:
//
//   - storage/file: a single gzip-compressed JSON cache file
//   - storage/badger: a BadgerDB-backed cache for embedded deployments
//
// Public constructors return the storage.CacheRepository interface to prevent
// accidental coupling to a concrete backend; internal constructors may return
// concrete types.
//
// A persisted cache always carries the record store fingerprint it was built
// from. Consumers must validate that fingerprint before serving the cached
// vectors; the repositories themselves only store and retrieve.
package storage
