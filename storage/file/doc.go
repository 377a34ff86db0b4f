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


// Package file implements storage.CacheRepository as a single
// gzip-compressed JSON file.
//
// The file is self-describing: it carries the record store fingerprint, the
// embedding model name, the dimension, and parallel id/vector slices. Saves
// go through a temp file and an atomic rename so a crashed write never leaves
// a half-written cache behind.
package file
