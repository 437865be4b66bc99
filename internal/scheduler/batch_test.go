package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func TestValidateAssignmentsDataIntegrity(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)
	sc := makeContext([]*domain.Staff{kim}, []*domain.Shift{shift}, nil, nil)

	assignments := []*domain.DraftShiftAssignment{
		{ShiftID: 999, StaffID: 1},
		{ShiftID: 10, StaffID: 888},
	}

	result := NewEvaluator(nil).ValidateAssignments(assignments, sc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 2)
	for _, v := range result.Violations {
		assert.Equal(t, domain.ViolationDataIntegrity, v.Type)
		assert.Equal(t, domain.SeverityError, v.Severity)
	}
}

func TestValidateAssignmentsWeeklyHours(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	shifts := []*domain.Shift{
		makeShift(10, monday, "09:00", "17:00", "kitchen", 1),
		makeShift(11, monday.AddDate(0, 0, 2), "09:00", "17:00", "kitchen", 1),
		makeShift(12, monday.AddDate(0, 0, 4), "09:00", "17:00", "kitchen", 1),
	}
	constraints := []*domain.SchedulingConstraint{{
		ID: 1, BusinessID: 1,
		Type:     domain.ConstraintMaxHoursPerWeek,
		Value:    domain.ConstraintValue{Hours: 20},
		Priority: domain.PriorityHigh,
		IsActive: true,
	}}
	sc := makeContext([]*domain.Staff{kim}, shifts, constraints, nil)

	assignments := []*domain.DraftShiftAssignment{
		{ShiftID: 10, StaffID: 1},
		{ShiftID: 11, StaffID: 1},
		{ShiftID: 12, StaffID: 1},
	}

	result := NewEvaluator(nil).ValidateAssignments(assignments, sc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, string(domain.ConstraintMaxHoursPerWeek), result.Violations[0].Type)
	assert.Equal(t, kim.ID, result.Violations[0].StaffID)
}

func TestValidateAssignmentsShortRestIsWarning(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	late := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)
	early := makeShift(11, monday.AddDate(0, 0, 1), "01:00", "09:00", "kitchen", 1)
	constraints := []*domain.SchedulingConstraint{{
		ID: 1, BusinessID: 1,
		Type:     domain.ConstraintMinRestBetweenShifts,
		Value:    domain.ConstraintValue{Hours: 11},
		Priority: domain.PriorityHigh,
		IsActive: true,
	}}
	sc := makeContext([]*domain.Staff{kim}, []*domain.Shift{late, early}, constraints, nil)

	assignments := []*domain.DraftShiftAssignment{
		{ShiftID: 10, StaffID: 1},
		{ShiftID: 11, StaffID: 1},
	}

	result := NewEvaluator(nil).ValidateAssignments(assignments, sc)

	// 17:00 -> 01:00 next day is 8h of rest: short, but positive, so a warning
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, string(domain.ConstraintMinRestBetweenShifts), result.Warnings[0].Type)
	assert.Equal(t, domain.SeverityWarning, result.Warnings[0].Severity)
}

func TestValidateAssignmentsOverlappingShiftsAreErrors(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	first := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)
	overlapping := makeShift(11, monday, "15:00", "22:00", "kitchen", 1)
	constraints := []*domain.SchedulingConstraint{{
		ID: 1, BusinessID: 1,
		Type:     domain.ConstraintMinRestBetweenShifts,
		Value:    domain.ConstraintValue{Hours: 11},
		Priority: domain.PriorityHigh,
		IsActive: true,
	}}
	sc := makeContext([]*domain.Staff{kim}, []*domain.Shift{first, overlapping}, constraints, nil)

	assignments := []*domain.DraftShiftAssignment{
		{ShiftID: 10, StaffID: 1},
		{ShiftID: 11, StaffID: 1},
	}

	result := NewEvaluator(nil).ValidateAssignments(assignments, sc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, domain.SeverityError, result.Violations[0].Severity)
}

func TestValidateAssignmentsCleanSet(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	lee := makeStaff(2, "Lee Line", []string{"kitchen"}, 7.0)
	shifts := []*domain.Shift{
		makeShift(10, monday, "09:00", "17:00", "kitchen", 1),
		makeShift(11, monday.AddDate(0, 0, 1), "09:00", "17:00", "kitchen", 1),
	}
	constraints := []*domain.SchedulingConstraint{
		{
			ID: 1, BusinessID: 1,
			Type:     domain.ConstraintMaxHoursPerWeek,
			Value:    domain.ConstraintValue{Hours: 40},
			Priority: domain.PriorityHigh,
			IsActive: true,
		},
		{
			ID: 2, BusinessID: 1,
			Type:     domain.ConstraintMinRestBetweenShifts,
			Value:    domain.ConstraintValue{Hours: 11},
			Priority: domain.PriorityHigh,
			IsActive: true,
		},
	}
	sc := makeContext([]*domain.Staff{kim, lee}, shifts, constraints, nil)

	assignments := []*domain.DraftShiftAssignment{
		{ShiftID: 10, StaffID: 1},
		{ShiftID: 11, StaffID: 2},
	}

	result := NewEvaluator(nil).ValidateAssignments(assignments, sc)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Warnings)
}
