package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTechnique() *Record {
	r := &Record{
		Type:        RecordTypeTechnique,
		ID:          "EX-0016",
		Name:        "Jamming",
		Description: "Jamming is an electronic attack.",
		Tactic:      "Execution",
		TacticID:    "ST0004",
	}
	EnsureFullText(r)
	return r
}

func TestValidateRecord(t *testing.T) {
	t.Run("valid technique", func(t *testing.T) {
		require.NoError(t, ValidateRecord(validTechnique()))
	})

	t.Run("valid sub-technique", func(t *testing.T) {
		r := validTechnique()
		r.Type = RecordTypeSubTechnique
		r.ID = "EX-0016.01"
		r.ParentID = "EX-0016"
		r.ParentName = "Jamming"
		require.NoError(t, ValidateRecord(r))
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateRecord(nil)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("empty id", func(t *testing.T) {
		r := validTechnique()
		r.ID = ""
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("empty name", func(t *testing.T) {
		r := validTechnique()
		r.Name = ""
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("empty full text", func(t *testing.T) {
		r := validTechnique()
		r.FullText = ""
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrEmptyFullText)
	})

	t.Run("unknown type", func(t *testing.T) {
		r := validTechnique()
		r.Type = "procedure"
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrInvalidRecordType)
	})

	t.Run("sub-technique without parent", func(t *testing.T) {
		r := validTechnique()
		r.Type = RecordTypeSubTechnique
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrMissingParent)
	})
}

func TestValidateRecordType(t *testing.T) {
	assert.NoError(t, ValidateRecordType(RecordTypeTechnique))
	assert.NoError(t, ValidateRecordType(RecordTypeSubTechnique))
	assert.NoError(t, ValidateRecordType(RecordTypeTactic))
	assert.ErrorIs(t, ValidateRecordType("mitigation"), ErrInvalidRecordType)
}
