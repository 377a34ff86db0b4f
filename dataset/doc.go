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


// Package dataset loads the prebuilt SPARTA catalog from its JSON dataset file
// and exposes it as a read-only, ordered record store.
//
// The store is loaded once at startup and never mutated afterwards: lookups by
// id, iteration in dataset order, tactic filtering, and a content fingerprint
// used to validate persisted embedding caches.
package dataset
