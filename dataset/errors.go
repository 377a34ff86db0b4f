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


package dataset

import "errors"

var (
	// ErrDataLoad indicates the dataset file is missing or malformed.
	// This is fatal at startup: the system cannot serve queries without records.
	ErrDataLoad = errors.New("dataset load failed")

	// ErrNotFound indicates a lookup by an unknown record id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID indicates two records in the dataset share an id.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrUnresolvedParent indicates a sub-technique whose parent id does not
	// resolve to a technique in the same dataset.
	ErrUnresolvedParent = errors.New("unresolved parent technique")
)
