package dataset

import "github.com/poiesic/sparta/core"

// NewTestStore builds a small in-memory catalog for tests in this module.
// It includes the EX-0016 "Jamming" technique plus entries from other tactics
// so ranking and tactic filtering are observable.
func NewTestStore() (*Store, error) {
	records := []*core.Record{
		{
			Type:        core.RecordTypeTechnique,
			ID:          "REC-0005",
			Name:        "Eavesdropping",
			Description: "Threat actors may seek to capture network communications and radio frequency signals used for uplink and downlink communications.",
			Tactic:      "Reconnaissance",
			TacticID:    "ST0001",
		},
		{
			Type:        core.RecordTypeSubTechnique,
			ID:          "REC-0005.02",
			Name:        "Downlink Intercept",
			Description: "Threat actors may capture the RF communications as it pertains to the downlink of the victim spacecraft.",
			Tactic:      "Reconnaissance",
			TacticID:    "ST0001",
			ParentID:    "REC-0005",
			ParentName:  "Eavesdropping",
		},
		{
			Type:        core.RecordTypeTechnique,
			ID:          "EX-0016",
			Name:        "Jamming",
			Description: "Jamming is an electronic attack that interferes with satellite communications by overpowering signals.",
			Tactic:      "Execution",
			TacticID:    "ST0004",
		},
		{
			Type:        core.RecordTypeSubTechnique,
			ID:          "EX-0016.01",
			Name:        "Uplink Jamming",
			Description: "Threat actors may jam the uplink signal preventing ground commands from reaching the spacecraft.",
			Tactic:      "Execution",
			TacticID:    "ST0004",
			ParentID:    "EX-0016",
			ParentName:  "Jamming",
		},
		{
			Type:        core.RecordTypeTechnique,
			ID:          "IA-0001",
			Name:        "Compromise Supply Chain",
			Description: "Threat actors may manipulate or compromise the supply chain of a spacecraft prior to launch.",
			Tactic:      "Initial Access",
			TacticID:    "ST0003",
		},
		{
			Type:        core.RecordTypeTechnique,
			ID:          "EXF-0003",
			Name:        "Eavesdropping Downlink",
			Description: "Threat actors may steal mission data by intercepting the downlink.",
			Tactic:      "Exfiltration",
			TacticID:    "ST0008",
		},
	}

	for _, r := range records {
		core.EnsureFullText(r)
	}

	return New(records)
}
