package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	records := []*Record{
		{ID: "EX-0016", FullText: "Jamming Jamming is an electronic attack. Execution"},
		{ID: "REC-0005", FullText: "Eavesdropping Capturing RF communications. Reconnaissance"},
	}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint(records), Fingerprint(records))
	})

	t.Run("sensitive to content change", func(t *testing.T) {
		before := Fingerprint(records)

		changed := []*Record{
			{ID: records[0].ID, FullText: records[0].FullText + " revised"},
			records[1],
		}
		assert.NotEqual(t, before, Fingerprint(changed))
	})

	t.Run("sensitive to order", func(t *testing.T) {
		reordered := []*Record{records[1], records[0]}
		assert.NotEqual(t, Fingerprint(records), Fingerprint(reordered))
	})

	t.Run("sensitive to count", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint(records), Fingerprint(records[:1]))
	})

	t.Run("field boundaries do not collide", func(t *testing.T) {
		a := []*Record{{ID: "ab", FullText: "c"}}
		b := []*Record{{ID: "a", FullText: "bc"}}
		assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	})
}
