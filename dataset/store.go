package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/sparta/core"
)

// Store is an in-memory, read-only collection of SPARTA records in dataset
// order. It is built once by Load and never mutated afterwards, so it is safe
// for concurrent readers without locking.
type Store struct {
	records     []*core.Record
	byID        map[string]*core.Record
	fingerprint string
}

// Load reads a SPARTA dataset file and builds a Store from it.
//
// The file must contain a JSON array of record objects. A missing file,
// malformed JSON, a record without an id or full text, a duplicate id, or a
// sub-technique whose parent does not resolve all fail with an error wrapping
// ErrDataLoad.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer f.Close()

	store, err := Read(f)
	if err != nil {
		return nil, err
	}

	slog.Default().Debug("dataset loaded", "path", path, "records", store.Len())
	return store, nil
}

// Read builds a Store from JSON dataset content. Most callers use Load; Read
// exists for in-memory datasets and tests.
func Read(r io.Reader) (*Store, error) {
	var records []*core.Record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}

	return New(records)
}

// New builds a Store from an already-decoded record sequence, enforcing the
// dataset invariants: unique ids, non-empty id and full text per record, and
// resolvable parent references for sub-techniques.
func New(records []*core.Record) (*Store, error) {
	byID := make(map[string]*core.Record, len(records))
	for i, record := range records {
		if err := core.ValidateRecord(record); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDataLoad, i, err)
		}
		if _, ok := byID[record.ID]; ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrDataLoad, ErrDuplicateID, record.ID)
		}
		byID[record.ID] = record
	}

	for _, record := range records {
		if record.Type != core.RecordTypeSubTechnique {
			continue
		}
		parent, ok := byID[record.ParentID]
		if !ok || parent.Type != core.RecordTypeTechnique {
			return nil, fmt.Errorf("%w: %w: %s -> %s", ErrDataLoad, ErrUnresolvedParent, record.ID, record.ParentID)
		}
	}

	return &Store{
		records:     records,
		byID:        byID,
		fingerprint: core.Fingerprint(records),
	}, nil
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the records in dataset order. Callers must not mutate the
// returned slice or the records it points to.
func (s *Store) Records() []*core.Record {
	return s.records
}

// GetByID retrieves a record by id. Returns ErrNotFound for unknown ids.
func (s *Store) GetByID(id string) (*core.Record, error) {
	record, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return record, nil
}

// Fingerprint returns the content fingerprint computed at load time. It is
// used to validate that a persisted embedding cache still matches the store.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// ByTactic returns all records whose tactic name contains the given name,
// case-insensitively, in dataset order.
func (s *Store) ByTactic(name string) []*core.Record {
	needle := strings.ToLower(name)
	var matches []*core.Record
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.Tactic), needle) {
			matches = append(matches, record)
		}
	}
	return matches
}

// SubTechniquesOf returns the sub-techniques of a parent technique in dataset
// order.
func (s *Store) SubTechniquesOf(parentID string) []*core.Record {
	var subs []*core.Record
	for _, record := range s.records {
		if record.Type == core.RecordTypeSubTechnique && record.ParentID == parentID {
			subs = append(subs, record)
		}
	}
	return subs
}
