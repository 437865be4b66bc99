package scheduler

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/Rugbydude80/localops-ai-sub001/internal/utils"
)

// Evaluator scores a single (shift, staff) pairing against every
// applicable hard and soft constraint. It is pure: rule failures come back
// as data, and the shared inputs are never mutated.
type Evaluator struct {
	params *Parameters
}

func NewEvaluator(params *Parameters) *Evaluator {
	if params == nil {
		params = DefaultParameters()
	}
	return &Evaluator{params: params}
}

// ValidateAssignment evaluates assigning staff to shift, given the
// assignments already made (existing plus any the solver committed earlier
// in the same run). The aggregate score is the priority-weighted mean of
// the sub-scores; an unmet critical constraint forces IsValid false no
// matter what the rest add up to.
func (e *Evaluator) ValidateAssignment(
	shift *domain.Shift,
	staff *domain.Staff,
	existing []*domain.DraftShiftAssignment,
	sc *SchedulingContext,
) *domain.ValidationResult {
	result := &domain.ValidationResult{
		Violations: []string{},
		Details: domain.ValidationDetails{
			ConstraintScores: make(map[string]float64),
		},
	}

	weights := make(map[string]float64)
	criticalViolated := false

	record := func(name string, score, weight float64) {
		result.Details.ConstraintScores[name] = score
		weights[name] = weight
	}

	// skill_match: critical unless the business dials it down.
	skillPriority := domain.PriorityCritical
	if c := sc.ActiveConstraint(domain.ConstraintSkillMatchRequired); c != nil {
		skillPriority = c.Priority
	}
	if staff.HasSkill(shift.RequiredSkill) {
		record(ScoreSkillMatch, 1.0, e.params.priorityWeight(skillPriority))
	} else {
		record(ScoreSkillMatch, 0.0, e.params.priorityWeight(skillPriority))
		result.Violations = append(result.Violations,
			fmt.Sprintf("%s lacks required skill %q", staff.Name, shift.RequiredSkill))
		if skillPriority == domain.PriorityCritical {
			criticalViolated = true
		}
	}

	// availability: containment scores full, partial overlap proportional,
	// no overlap low but non-fatal.
	record(ScoreAvailability, e.availabilityScore(shift, staff, result), e.params.WeightMedium)

	// max_hours against the most restrictive applicable limit.
	e.maxHoursCheck(shift, staff, existing, sc, result, record)

	// min_rest only applies when the business configures it.
	if c := sc.ActiveConstraint(domain.ConstraintMinRestBetweenShifts); c != nil {
		score := e.minRestScore(shift, staff, existing, sc, c.Value.Hours, result)
		record(ScoreMinRest, score, e.params.priorityWeight(c.Priority))
		if score == 0 && c.Priority == domain.PriorityCritical {
			criticalViolated = true
		}
	}

	// fair_distribution against the mean load of qualified peers.
	fairWeight := e.params.WeightMedium
	if c := sc.ActiveConstraint(domain.ConstraintFairDistribution); c != nil {
		fairWeight = e.params.priorityWeight(c.Priority)
	}
	record(ScoreFairDistribution, e.fairnessScore(shift, staff, existing, sc), fairWeight)

	// Preference checks run only when an active, currently effective
	// preference of that type exists.
	for _, pref := range sc.EffectivePreferences(staff.ID, shift.Date) {
		weight := e.params.priorityWeight(pref.Priority)
		switch pref.Type {
		case domain.PreferenceTimeOff:
			if prefCoversDate(pref, shift.Date) {
				record(ScoreTimeOff, 0.0, weight)
				result.Violations = append(result.Violations,
					fmt.Sprintf("%s has time off on %s", staff.Name, shift.Date.Format("2006-01-02")))
				if pref.Priority == domain.PriorityHigh || pref.Priority == domain.PriorityCritical {
					criticalViolated = true
				}
			} else {
				record(ScoreTimeOff, 1.0, weight)
			}
		case domain.PreferenceDayOff:
			if slices.Contains(pref.Value.Days, utils.WeekdayName(shift.Date)) {
				record(ScoreDayOff, 0.4, weight)
				result.Violations = append(result.Violations,
					fmt.Sprintf("%s prefers %ss off", staff.Name, utils.WeekdayName(shift.Date)))
			} else {
				record(ScoreDayOff, 1.0, weight)
			}
		case domain.PreferenceMinHours:
			record(ScoreMinHours, e.minHoursScore(shift, staff, existing, sc, pref.Value.Hours), weight)
		case domain.PreferenceAvailability:
			record(ScoreAvailabilityPreference, preferredWindowScore(shift, pref), weight)
		}
	}

	result.Score = weightedAverage(result.Details.ConstraintScores, weights)
	result.IsValid = !criticalViolated && result.Score >= e.params.ValidityFloor

	return result
}

func (e *Evaluator) availabilityScore(shift *domain.Shift, staff *domain.Staff, result *domain.ValidationResult) float64 {
	windows := staff.Availability[utils.WeekdayName(shift.Date)]
	if len(windows) == 0 {
		result.Violations = append(result.Violations,
			fmt.Sprintf("%s has no recorded availability on %s", staff.Name, utils.WeekdayName(shift.Date)))
		return 0.2
	}

	best := 0.0
	for _, w := range windows {
		frac := utils.OverlapFraction(shift.StartTime, shift.EndTime, w.StartTime, w.EndTime)
		if frac > best {
			best = frac
		}
	}

	switch {
	case best >= 1.0:
		return 1.0
	case best > 0:
		return 0.3 + 0.6*best
	default:
		result.Violations = append(result.Violations,
			fmt.Sprintf("shift falls outside %s's availability windows", staff.Name))
		return 0.2
	}
}

func (e *Evaluator) maxHoursCheck(
	shift *domain.Shift,
	staff *domain.Staff,
	existing []*domain.DraftShiftAssignment,
	sc *SchedulingContext,
	result *domain.ValidationResult,
	record func(string, float64, float64),
) {
	limit := e.params.DefaultMaxHoursPerWeek
	weight := e.params.WeightHigh

	if c := sc.ActiveConstraint(domain.ConstraintMaxHoursPerWeek); c != nil && c.Value.Hours > 0 {
		limit = math.Min(limit, c.Value.Hours)
		weight = e.params.priorityWeight(c.Priority)
	}
	for _, pref := range sc.EffectivePreferences(staff.ID, shift.Date) {
		if pref.Type == domain.PreferenceMaxHours && pref.Value.Hours > 0 {
			limit = math.Min(limit, pref.Value.Hours)
		}
	}

	total := e.weeklyHours(staff.ID, shift.Date, existing, sc) + utils.ShiftHours(shift.StartTime, shift.EndTime)
	result.Details.WeeklyHours = total
	result.Details.WeeklyLimit = limit

	if total <= limit {
		record(ScoreMaxHours, 1.0, weight)
		return
	}

	overage := total - limit
	result.Details.HoursOverage = overage
	score := math.Max(0.05, 0.45-overage/limit)
	record(ScoreMaxHours, score, weight)
	result.Violations = append(result.Violations,
		fmt.Sprintf("%s would exceed the weekly hour limit by %.1fh (%.1f/%.1f)", staff.Name, overage, total, limit))
}

// weeklyHours sums assigned hours for the staff member within the ISO week
// containing date.
func (e *Evaluator) weeklyHours(staffID int64, date time.Time, assignments []*domain.DraftShiftAssignment, sc *SchedulingContext) float64 {
	week := utils.ISOWeekKey(date)
	total := 0.0
	for _, a := range assignments {
		if a.StaffID != staffID {
			continue
		}
		sh, ok := sc.ShiftByID(a.ShiftID)
		if !ok || utils.ISOWeekKey(sh.Date) != week {
			continue
		}
		total += utils.ShiftHours(sh.StartTime, sh.EndTime)
	}
	return total
}

func (e *Evaluator) minRestScore(
	shift *domain.Shift,
	staff *domain.Staff,
	existing []*domain.DraftShiftAssignment,
	sc *SchedulingContext,
	requiredHours float64,
	result *domain.ValidationResult,
) float64 {
	candStart := utils.CombineDateClock(shift.Date, shift.StartTime)
	candEnd := utils.CombineDateClock(shift.Date, shift.EndTime)

	// gap to the immediately adjacent shifts only
	prevGap := math.Inf(1)
	nextGap := math.Inf(1)
	for _, a := range existing {
		if a.StaffID != staff.ID {
			continue
		}
		sh, ok := sc.ShiftByID(a.ShiftID)
		if !ok || sh.ID == shift.ID {
			continue
		}
		start := utils.CombineDateClock(sh.Date, sh.StartTime)
		end := utils.CombineDateClock(sh.Date, sh.EndTime)

		if !end.After(candStart) {
			if gap := candStart.Sub(end).Hours(); gap < prevGap {
				prevGap = gap
			}
		} else if !start.Before(candEnd) {
			if gap := start.Sub(candEnd).Hours(); gap < nextGap {
				nextGap = gap
			}
		} else {
			// overlapping shift, no rest at all
			prevGap = 0
		}
	}

	gap := math.Min(prevGap, nextGap)
	if gap >= requiredHours {
		return 1.0
	}

	result.Violations = append(result.Violations,
		fmt.Sprintf("only %.1fh rest around this shift for %s (minimum %.1fh)", gap, staff.Name, requiredHours))
	if gap <= 0 {
		return 0.0
	}
	return 0.2 * (gap / requiredHours)
}

// fairnessScore compares the staff member's assignment count against the
// mean among peers qualified for this shift: under-loaded staff get a
// bonus, heavily loaded ones a penalty.
func (e *Evaluator) fairnessScore(shift *domain.Shift, staff *domain.Staff, existing []*domain.DraftShiftAssignment, sc *SchedulingContext) float64 {
	qualified := sc.QualifiedStaff(shift)
	if len(qualified) == 0 {
		return 0.75
	}

	counts := make(map[int64]int)
	for _, a := range existing {
		counts[a.StaffID]++
	}

	total := 0
	for _, q := range qualified {
		total += counts[q.ID]
	}
	mean := float64(total) / float64(len(qualified))
	diff := float64(counts[staff.ID]) - mean

	return clamp(0.75-0.25*diff, 0.1, 1.0)
}

func (e *Evaluator) minHoursScore(shift *domain.Shift, staff *domain.Staff, existing []*domain.DraftShiftAssignment, sc *SchedulingContext, wanted float64) float64 {
	if wanted <= 0 {
		return 1.0
	}
	current := e.weeklyHours(staff.ID, shift.Date, existing, sc)
	if current < wanted {
		// the assignment moves the staff member toward their floor
		return 1.0
	}
	return 0.7
}

func preferredWindowScore(shift *domain.Shift, pref *domain.StaffPreference) float64 {
	windows := pref.Value.Windows[utils.WeekdayName(shift.Date)]
	if len(windows) == 0 {
		return 0.5
	}
	best := 0.0
	for _, w := range windows {
		frac := utils.OverlapFraction(shift.StartTime, shift.EndTime, w.StartTime, w.EndTime)
		if frac > best {
			best = frac
		}
	}
	switch {
	case best >= 1.0:
		return 1.0
	case best >= 0.5:
		return 0.95
	case best > 0:
		return 0.7
	default:
		return 0.5
	}
}

func prefCoversDate(pref *domain.StaffPreference, date time.Time) bool {
	if len(pref.Value.Dates) == 0 {
		// a dateless time_off preference blocks its whole effective window
		return true
	}
	return slices.Contains(pref.Value.Dates, date.Format("2006-01-02"))
}

func weightedAverage(scores, weights map[string]float64) float64 {
	sum := 0.0
	weightTotal := 0.0
	for name, score := range scores {
		w := weights[name]
		sum += score * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0
	}
	return sum / weightTotal
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
