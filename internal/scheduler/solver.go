package scheduler

import (
	"sort"
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

// Solver produces a full draft assignment set for a scheduling context.
// It is deterministic: identical inputs yield identical assignments.
type Solver struct {
	params    *Parameters
	evaluator *Evaluator
}

func NewSolver(params *Parameters) *Solver {
	if params == nil {
		params = DefaultParameters()
	}
	return &Solver{
		params:    params,
		evaluator: NewEvaluator(params),
	}
}

func (s *Solver) Evaluator() *Evaluator {
	return s.evaluator
}

type UnassignedShift struct {
	ShiftID int64 `json:"shiftID"`
	Missing int32 `json:"missing"`
}

type SolveResult struct {
	Assignments      []*domain.DraftShiftAssignment `json:"assignments"`
	UnassignedShifts []UnassignedShift              `json:"unassignedShifts"`
	AssignedCount    int                            `json:"assignedCount"`
	MeanConfidence   float64                        `json:"meanConfidence"`
}

// Solve walks the shifts in priority order and greedily fills each one
// with its best-scoring valid candidates. Assignments are committed
// shift by shift so later evaluations see the hour and fairness impact of
// earlier decisions. A shift with no valid candidate is left unassigned;
// that is an outcome, not an error.
func (s *Solver) Solve(sc *SchedulingContext) *SolveResult {
	result := &SolveResult{
		Assignments:      []*domain.DraftShiftAssignment{},
		UnassignedShifts: []UnassignedShift{},
	}
	if len(sc.Shifts) == 0 || len(sc.Staff) == 0 {
		for _, shift := range sc.Shifts {
			result.UnassignedShifts = append(result.UnassignedShifts, UnassignedShift{
				ShiftID: shift.ID,
				Missing: shift.RequiredStaffCount,
			})
		}
		return result
	}

	shifts := s.prioritizeShifts(sc.Shifts)

	running := make([]*domain.DraftShiftAssignment, 0, len(sc.ExistingAssignments)+len(shifts))
	running = append(running, sc.ExistingAssignments...)

	confidenceTotal := 0.0

	for _, shift := range shifts {
		needed := int(shift.RequiredStaffCount)
		taken := make(map[int64]bool)
		for _, a := range running {
			if a.ShiftID == shift.ID {
				taken[a.StaffID] = true
				needed--
			}
		}
		if needed <= 0 {
			continue
		}

		candidates := s.rankCandidates(shift, sc, running, taken)

		assigned := 0
		for _, c := range candidates {
			if assigned >= needed {
				break
			}
			assignment := &domain.DraftShiftAssignment{
				ShiftID:         shift.ID,
				StaffID:         c.staff.ID,
				ConfidenceScore: c.result.Score,
				IsAIGenerated:   true,
			}
			result.Assignments = append(result.Assignments, assignment)
			running = append(running, assignment)
			confidenceTotal += c.result.Score
			assigned++
		}

		if assigned < needed {
			result.UnassignedShifts = append(result.UnassignedShifts, UnassignedShift{
				ShiftID: shift.ID,
				Missing: int32(needed - assigned),
			})
		}
	}

	result.AssignedCount = len(result.Assignments)
	if result.AssignedCount > 0 {
		result.MeanConfidence = confidenceTotal / float64(result.AssignedCount)
	}

	return result
}

// prioritizeShifts orders shifts by date, then by descending difficulty so
// scarce qualified staff are allocated before easy slots starve them.
func (s *Solver) prioritizeShifts(shifts []*domain.Shift) []*domain.Shift {
	sorted := make([]*domain.Shift, len(shifts))
	copy(sorted, shifts)

	difficulty := func(sh *domain.Shift) int {
		return int(sh.RequiredStaffCount)*10 + s.params.skillDifficulty(sh.RequiredSkill)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := dateOnly(sorted[i].Date), dateOnly(sorted[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		fi, fj := difficulty(sorted[i]), difficulty(sorted[j])
		if fi != fj {
			return fi > fj
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted
}

type candidate struct {
	staff  *domain.Staff
	result *domain.ValidationResult
}

// rankCandidates scores every qualified staff member against the running
// assignment set and orders them best first. Invalid pairings are dropped
// entirely: an unfilled shift is preferable to an invalid one. Ties break
// on reliability, then lighter current load, then ID for determinism.
func (s *Solver) rankCandidates(shift *domain.Shift, sc *SchedulingContext, running []*domain.DraftShiftAssignment, taken map[int64]bool) []candidate {
	counts := make(map[int64]int)
	for _, a := range running {
		counts[a.StaffID]++
	}

	var candidates []candidate
	for _, staff := range sc.QualifiedStaff(shift) {
		if taken[staff.ID] {
			continue
		}
		res := s.evaluator.ValidateAssignment(shift, staff, running, sc)
		if !res.IsValid {
			continue
		}
		candidates = append(candidates, candidate{staff: staff, result: res})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].result.Score != candidates[j].result.Score {
			return candidates[i].result.Score > candidates[j].result.Score
		}
		if candidates[i].staff.ReliabilityScore != candidates[j].staff.ReliabilityScore {
			return candidates[i].staff.ReliabilityScore > candidates[j].staff.ReliabilityScore
		}
		if counts[candidates[i].staff.ID] != counts[candidates[j].staff.ID] {
			return counts[candidates[i].staff.ID] < counts[candidates[j].staff.ID]
		}
		return candidates[i].staff.ID < candidates[j].staff.ID
	})

	return candidates
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
