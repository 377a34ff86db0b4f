package badger

import "fmt"

// Key prefixes for the embedding cache
const (
	cacheMetaKey      = "embcac:meta"
	cacheVectorPrefix = "embvec"
)

// makeVectorKey generates a key for a record's embedding vector.
func makeVectorKey(recordID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", cacheVectorPrefix, recordID))
}
