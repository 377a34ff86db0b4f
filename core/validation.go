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

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - ID, Name, and FullText must not be empty
//   - Type must be a known RecordType
//   - sub_technique records must carry a ParentID
//
// NOT validated here:
//   - ParentID resolvability (checked against the full collection at load time)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	if record.FullText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyFullText)
	}

	if err := ValidateRecordType(record.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	if record.Type == RecordTypeSubTechnique && record.ParentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingParent)
	}

	return nil
}

// ValidateRecordType validates that a RecordType has a known value.
func ValidateRecordType(t RecordType) error {
	switch t {
	case RecordTypeTechnique, RecordTypeSubTechnique, RecordTypeTactic:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidRecordType, t)
}
