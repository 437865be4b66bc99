package scheduler

import "github.com/Rugbydude80/localops-ai-sub001/internal/domain"

// Parameters tune the evaluator and solver. The priority-to-weight mapping
// is exposed here (and through config) instead of being hard-coded.
type Parameters struct {
	WeightLow      float64
	WeightMedium   float64
	WeightHigh     float64
	WeightCritical float64

	// ValidityFloor is the minimum aggregate score for a pairing to be
	// considered valid; an unfilled shift is preferable to one below it.
	ValidityFloor float64

	// DefaultMaxHoursPerWeek applies when neither a business constraint nor
	// a staff preference caps weekly hours.
	DefaultMaxHoursPerWeek float64

	// SkillDifficulty ranks how scarce each skill tends to be, so harder
	// shifts are solved before easy slots starve them of candidates.
	SkillDifficulty map[string]int
}

func DefaultParameters() *Parameters {
	return &Parameters{
		WeightLow:              0.5,
		WeightMedium:           1.0,
		WeightHigh:             2.0,
		WeightCritical:         4.0,
		ValidityFloor:          0.3,
		DefaultMaxHoursPerWeek: 48,
		SkillDifficulty: map[string]int{
			"management": 4,
			"chef":       3,
			"kitchen":    3,
			"bartender":  2,
			"server":     1,
		},
	}
}

func (p *Parameters) priorityWeight(priority domain.Priority) float64 {
	switch priority {
	case domain.PriorityCritical:
		return p.WeightCritical
	case domain.PriorityHigh:
		return p.WeightHigh
	case domain.PriorityLow:
		return p.WeightLow
	default:
		return p.WeightMedium
	}
}

func (p *Parameters) skillDifficulty(skill string) int {
	if rank, ok := p.SkillDifficulty[skill]; ok {
		return rank
	}
	return 2
}

// Sub-score names exposed in ValidationResult.Details.ConstraintScores.
const (
	ScoreSkillMatch             = "skill_match"
	ScoreAvailability           = "availability"
	ScoreMaxHours               = "max_hours"
	ScoreMinRest                = "min_rest"
	ScoreFairDistribution       = "fair_distribution"
	ScoreMinHours               = "min_hours"
	ScoreTimeOff                = "time_off"
	ScoreDayOff                 = "day_off"
	ScoreAvailabilityPreference = "availability_preference"
)
