package core

import "strings"

// RecordType classifies an entry in the SPARTA catalog.
type RecordType string

const (
	// RecordTypeTechnique is a top-level attack technique.
	RecordTypeTechnique RecordType = "technique"
	// RecordTypeSubTechnique is a specialization of a parent technique.
	RecordTypeSubTechnique RecordType = "sub_technique"
	// RecordTypeTactic is one of the nine top-level attacker goal categories.
	RecordTypeTactic RecordType = "tactic"
)

// Record is a single SPARTA catalog entry: a technique, sub-technique, or tactic.
// Records are immutable once loaded from a dataset.
type Record struct {
	Type              RecordType `json:"type"`
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Tactic            string     `json:"tactic"`
	TacticID          string     `json:"tactic_id"`
	TacticDescription string     `json:"tactic_description,omitempty"`
	ParentID          string     `json:"parent_id,omitempty"`
	ParentName        string     `json:"parent_name,omitempty"`

	// FullText is the searchable representation indexed by both the keyword
	// and the embedding searcher. It is derived from the other fields at
	// dataset build time and treated as immutable afterwards.
	FullText string `json:"full_text"`
}

// FullTextOf derives the searchable text for a record. Sub-techniques include
// their parent technique's name so queries for the parent surface them too.
// The derivation is deterministic: calling it twice yields identical output.
func FullTextOf(r *Record) string {
	parts := []string{r.Name, r.Description}
	if r.ParentName != "" {
		parts = append(parts, r.ParentName)
	}
	if r.Tactic != "" {
		parts = append(parts, r.Tactic)
	}
	return strings.Join(parts, " ")
}

// EnsureFullText fills in FullText when the dataset did not provide one.
// Dataset-provided text is preserved verbatim.
func EnsureFullText(r *Record) {
	if r.FullText == "" {
		r.FullText = FullTextOf(r)
	}
}

// SimilarityMatch is a raw hit from the embedding index: a record id and its
// cosine similarity to the query vector.
type SimilarityMatch struct {
	RecordID string
	Score    float32
}

// SearchResult pairs a full record with its relevance score.
type SearchResult struct {
	Record *Record
	Score  float32
}

// EmbeddingCache is the persisted form of a built embedding index. RecordIDs
// and Vectors are parallel slices in dataset order. Fingerprint identifies the
// record store contents the vectors were built from; Model names the embedding
// model, since vectors from different models are not comparable.
type EmbeddingCache struct {
	Fingerprint string      `json:"fingerprint"`
	Model       string      `json:"model"`
	Dimension   int         `json:"dimension"`
	RecordIDs   []string    `json:"record_ids"`
	Vectors     [][]float32 `json:"vectors"`
}
