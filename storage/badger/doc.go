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


// Package badger implements storage.CacheRepository on BadgerDB.
//
// Cache metadata (fingerprint, model, dimension, ordered record ids) lives
// under a single meta key; each record's vector lives under its own key.
// Saves replace the whole cache in one transaction. An in-memory mode exists
// for tests.
package badger
