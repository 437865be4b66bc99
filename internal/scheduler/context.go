package scheduler

import (
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

// SchedulingContext is a read-side view over the snapshots a solve or
// validation runs against. It joins the read-only inputs up front so the
// evaluator never reaches back into persistence, and never mutates them.
type SchedulingContext struct {
	BusinessID int64
	StartDate  time.Time
	EndDate    time.Time

	Staff               []*domain.Staff
	Shifts              []*domain.Shift
	Constraints         []*domain.SchedulingConstraint
	Preferences         []*domain.StaffPreference
	ExistingAssignments []*domain.DraftShiftAssignment

	staffByID         map[int64]*domain.Staff
	shiftByID         map[int64]*domain.Shift
	constraintsByType map[domain.ConstraintType]*domain.SchedulingConstraint
	prefsByStaff      map[int64][]*domain.StaffPreference
}

func NewSchedulingContext(
	businessID int64,
	startDate, endDate time.Time,
	staff []*domain.Staff,
	shifts []*domain.Shift,
	constraints []*domain.SchedulingConstraint,
	preferences []*domain.StaffPreference,
	existing []*domain.DraftShiftAssignment,
) *SchedulingContext {
	sc := &SchedulingContext{
		BusinessID:          businessID,
		StartDate:           startDate,
		EndDate:             endDate,
		Staff:               staff,
		Shifts:              shifts,
		Constraints:         constraints,
		Preferences:         preferences,
		ExistingAssignments: existing,
		staffByID:           make(map[int64]*domain.Staff),
		shiftByID:           make(map[int64]*domain.Shift),
		constraintsByType:   make(map[domain.ConstraintType]*domain.SchedulingConstraint),
		prefsByStaff:        make(map[int64][]*domain.StaffPreference),
	}

	for _, s := range staff {
		sc.staffByID[s.ID] = s
	}
	for _, sh := range shifts {
		sc.shiftByID[sh.ID] = sh
	}
	for _, c := range constraints {
		if c.IsActive {
			sc.constraintsByType[c.Type] = c
		}
	}
	for _, p := range preferences {
		sc.prefsByStaff[p.StaffID] = append(sc.prefsByStaff[p.StaffID], p)
	}

	return sc
}

func (sc *SchedulingContext) StaffByID(id int64) (*domain.Staff, bool) {
	s, ok := sc.staffByID[id]
	return s, ok
}

func (sc *SchedulingContext) ShiftByID(id int64) (*domain.Shift, bool) {
	s, ok := sc.shiftByID[id]
	return s, ok
}

// ActiveConstraint returns the active business constraint of the given
// type, or nil when none is configured.
func (sc *SchedulingContext) ActiveConstraint(t domain.ConstraintType) *domain.SchedulingConstraint {
	return sc.constraintsByType[t]
}

// EffectivePreferences returns the staff member's active preferences whose
// effective window contains the given date.
func (sc *SchedulingContext) EffectivePreferences(staffID int64, date time.Time) []*domain.StaffPreference {
	var effective []*domain.StaffPreference
	for _, p := range sc.prefsByStaff[staffID] {
		if p.EffectiveOn(date) {
			effective = append(effective, p)
		}
	}
	return effective
}

// QualifiedStaff returns the active staff holding the shift's required skill.
func (sc *SchedulingContext) QualifiedStaff(shift *domain.Shift) []*domain.Staff {
	var qualified []*domain.Staff
	for _, s := range sc.Staff {
		if s.IsActive && s.HasSkill(shift.RequiredSkill) {
			qualified = append(qualified, s)
		}
	}
	return qualified
}
