package scheduler

import (
	"fmt"
	"math"
	"sort"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/Rugbydude80/localops-ai-sub001/internal/utils"
)

// ValidateAssignments performs the cross-assignment checks a single-pair
// evaluation cannot see: total weekly hours per staff member across the
// whole proposed set, rest periods between every pair of proposed shifts,
// and dangling shift/staff references. Missing references are reported as
// data_integrity violations rather than failing the batch outright.
func (e *Evaluator) ValidateAssignments(assignments []*domain.DraftShiftAssignment, sc *SchedulingContext) *domain.BatchValidationResult {
	result := &domain.BatchValidationResult{
		Violations: []domain.BatchViolation{},
		Warnings:   []domain.BatchViolation{},
	}

	type placed struct {
		assignment *domain.DraftShiftAssignment
		shift      *domain.Shift
	}
	byStaff := make(map[int64][]placed)

	for _, a := range assignments {
		shift, shiftOK := sc.ShiftByID(a.ShiftID)
		if !shiftOK {
			result.Violations = append(result.Violations, domain.BatchViolation{
				Type:     domain.ViolationDataIntegrity,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("assignment references unknown shift %d", a.ShiftID),
				ShiftID:  a.ShiftID,
				StaffID:  a.StaffID,
			})
		}
		if _, staffOK := sc.StaffByID(a.StaffID); !staffOK {
			result.Violations = append(result.Violations, domain.BatchViolation{
				Type:     domain.ViolationDataIntegrity,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("assignment references unknown staff %d", a.StaffID),
				ShiftID:  a.ShiftID,
				StaffID:  a.StaffID,
			})
		}
		if shiftOK {
			byStaff[a.StaffID] = append(byStaff[a.StaffID], placed{assignment: a, shift: shift})
		}
	}

	minRest := sc.ActiveConstraint(domain.ConstraintMinRestBetweenShifts)

	staffIDs := make([]int64, 0, len(byStaff))
	for id := range byStaff {
		staffIDs = append(staffIDs, id)
	}
	sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })

	for _, staffID := range staffIDs {
		staff, ok := sc.StaffByID(staffID)
		if !ok {
			continue
		}
		entries := byStaff[staffID]

		// weekly hour totals across the whole proposed set
		weekly := make(map[string]float64)
		for _, p := range entries {
			weekly[utils.ISOWeekKey(p.shift.Date)] += utils.ShiftHours(p.shift.StartTime, p.shift.EndTime)
		}
		limit := e.weeklyLimitFor(staff, sc)
		for week, hours := range weekly {
			if hours > limit {
				result.Violations = append(result.Violations, domain.BatchViolation{
					Type:     string(domain.ConstraintMaxHoursPerWeek),
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("%s is assigned %.1fh in week %s, over the %.1fh limit", staff.Name, hours, week, limit),
					StaffID:  staffID,
				})
			}
		}

		// rest between every pair of proposed shifts
		if minRest == nil || minRest.Value.Hours <= 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			si := utils.CombineDateClock(entries[i].shift.Date, entries[i].shift.StartTime)
			sj := utils.CombineDateClock(entries[j].shift.Date, entries[j].shift.StartTime)
			return si.Before(sj)
		})
		for i := 1; i < len(entries); i++ {
			prevEnd := utils.CombineDateClock(entries[i-1].shift.Date, entries[i-1].shift.EndTime)
			nextStart := utils.CombineDateClock(entries[i].shift.Date, entries[i].shift.StartTime)
			gap := nextStart.Sub(prevEnd).Hours()
			if gap >= minRest.Value.Hours {
				continue
			}
			severity := domain.SeverityWarning
			if gap <= 0 {
				severity = domain.SeverityError
			}
			violation := domain.BatchViolation{
				Type:     string(domain.ConstraintMinRestBetweenShifts),
				Severity: severity,
				Message: fmt.Sprintf("%s has %.1fh rest between shifts %d and %d (minimum %.1fh)",
					staff.Name, math.Max(gap, 0), entries[i-1].shift.ID, entries[i].shift.ID, minRest.Value.Hours),
				StaffID: staffID,
				ShiftID: entries[i].shift.ID,
			}
			if severity == domain.SeverityWarning {
				result.Warnings = append(result.Warnings, violation)
			} else {
				result.Violations = append(result.Violations, violation)
			}
		}
	}

	result.IsValid = true
	for _, v := range result.Violations {
		if v.Severity == domain.SeverityError || v.Severity == domain.SeverityCritical {
			result.IsValid = false
			break
		}
	}

	return result
}

func (e *Evaluator) weeklyLimitFor(staff *domain.Staff, sc *SchedulingContext) float64 {
	limit := e.params.DefaultMaxHoursPerWeek
	if c := sc.ActiveConstraint(domain.ConstraintMaxHoursPerWeek); c != nil && c.Value.Hours > 0 {
		limit = math.Min(limit, c.Value.Hours)
	}
	for _, pref := range sc.prefsByStaff[staff.ID] {
		if pref.IsActive && pref.Type == domain.PreferenceMaxHours && pref.Value.Hours > 0 {
			limit = math.Min(limit, pref.Value.Hours)
		}
	}
	return limit
}
