package core

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint computes a deterministic content fingerprint for an ordered
// record sequence using BLAKE2b hashing. It covers the record count plus every
// record's id and full text, so editing a single description or reordering the
// collection produces a different fingerprint.
func Fingerprint(records []*Record) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(records)))
	h.Write(count[:])

	for _, r := range records {
		writeLenPrefixed(h, r.ID)
		writeLenPrefixed(h, r.FullText)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// writeLenPrefixed writes a length-prefixed string so that adjacent fields
// cannot collide under concatenation.
func writeLenPrefixed(h hash.Hash, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}
