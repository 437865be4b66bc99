package domain

import "strings"

type AssignmentReasoning struct {
	PrimaryReasons  []string `json:"primaryReasons"`
	Considerations  []string `json:"considerations"`
	RiskFactors     []string `json:"riskFactors"`
	ConfidenceScore float64  `json:"confidenceScore"`
}

// Summary flattens the reasoning into the single text column stored on an
// assignment. Every populated section is included so enrichment appended
// after the deterministic pass still reaches persistence.
func (r *AssignmentReasoning) Summary() string {
	var parts []string
	if len(r.PrimaryReasons) > 0 {
		parts = append(parts, strings.Join(r.PrimaryReasons, "; "))
	}
	if len(r.Considerations) > 0 {
		parts = append(parts, "Considerations: "+strings.Join(r.Considerations, "; "))
	}
	if len(r.RiskFactors) > 0 {
		parts = append(parts, "Risk factors: "+strings.Join(r.RiskFactors, "; "))
	}
	return strings.Join(parts, ". ")
}
