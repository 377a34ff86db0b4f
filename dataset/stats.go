package dataset

import "github.com/poiesic/sparta/core"

// TacticStats counts entries for a single tactic.
type TacticStats struct {
	Techniques    int
	SubTechniques int
}

// Stats summarizes the contents of a store.
type Stats struct {
	TotalEntries  int
	Techniques    int
	SubTechniques int
	Tactics       map[string]*TacticStats
}

// Stats computes catalog statistics: totals per record type and a breakdown
// per tactic.
func (s *Store) Stats() *Stats {
	stats := &Stats{
		TotalEntries: len(s.records),
		Tactics:      make(map[string]*TacticStats),
	}

	for _, record := range s.records {
		tactic, ok := stats.Tactics[record.Tactic]
		if !ok {
			tactic = &TacticStats{}
			stats.Tactics[record.Tactic] = tactic
		}

		switch record.Type {
		case core.RecordTypeTechnique:
			stats.Techniques++
			tactic.Techniques++
		case core.RecordTypeSubTechnique:
			stats.SubTechniques++
			tactic.SubTechniques++
		}
	}

	return stats
}
