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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyID indicates the ID field is empty.
	ErrEmptyID = errors.New("record id cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("record name cannot be empty")

	// ErrEmptyFullText indicates the FullText field is empty.
	ErrEmptyFullText = errors.New("record full text cannot be empty")

	// ErrInvalidRecordType indicates an unknown RecordType value.
	ErrInvalidRecordType = errors.New("invalid record type")

	// ErrMissingParent indicates a sub-technique without a parent reference.
	ErrMissingParent = errors.New("sub-technique requires a parent id")
)
