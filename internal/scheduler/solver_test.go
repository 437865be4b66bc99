package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func TestSolveAssignsQualifiedStaff(t *testing.T) {
	carla := makeStaff(1, "Carla Chef", []string{"chef"}, 9.0)
	kim := makeStaff(2, "Kim Cook", []string{"kitchen"}, 8.0)

	kitchenShift := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)
	chefShift := makeShift(11, monday, "09:00", "17:00", "chef", 1)

	sc := makeContext([]*domain.Staff{carla, kim}, []*domain.Shift{kitchenShift, chefShift}, nil, nil)
	result := NewSolver(nil).Solve(sc)

	require.Len(t, result.Assignments, 2)
	assert.Empty(t, result.UnassignedShifts)
	assert.Equal(t, 2, result.AssignedCount)
	assert.Greater(t, result.MeanConfidence, 0.7)

	byShift := make(map[int64]int64)
	for _, a := range result.Assignments {
		byShift[a.ShiftID] = a.StaffID
		assert.True(t, a.IsAIGenerated)
		assert.Greater(t, a.ConfidenceScore, 0.0)
	}
	assert.Equal(t, kim.ID, byShift[kitchenShift.ID])
	assert.Equal(t, carla.ID, byShift[chefShift.ID])
}

func TestSolveLeavesUnfillableShiftUnassigned(t *testing.T) {
	sam := makeStaff(1, "Sam Server", []string{"server"}, 8.0)
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)

	sc := makeContext([]*domain.Staff{sam}, []*domain.Shift{shift}, nil, nil)
	result := NewSolver(nil).Solve(sc)

	assert.Empty(t, result.Assignments)
	require.Len(t, result.UnassignedShifts, 1)
	assert.Equal(t, shift.ID, result.UnassignedShifts[0].ShiftID)
	assert.Equal(t, int32(1), result.UnassignedShifts[0].Missing)
}

func TestSolveReportsPartialFill(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 3)

	sc := makeContext([]*domain.Staff{kim}, []*domain.Shift{shift}, nil, nil)
	result := NewSolver(nil).Solve(sc)

	require.Len(t, result.Assignments, 1)
	require.Len(t, result.UnassignedShifts, 1)
	assert.Equal(t, int32(2), result.UnassignedShifts[0].Missing)
}

func TestSolveSkipsInactiveStaff(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	kim.IsActive = false
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 1)

	sc := makeContext([]*domain.Staff{kim}, []*domain.Shift{shift}, nil, nil)
	result := NewSolver(nil).Solve(sc)

	assert.Empty(t, result.Assignments)
	require.Len(t, result.UnassignedShifts, 1)
}

func TestSolveNeverAssignsSameStaffTwiceToOneShift(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	lee := makeStaff(2, "Lee Line", []string{"kitchen"}, 7.0)
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 2)

	sc := makeContext([]*domain.Staff{kim, lee}, []*domain.Shift{shift}, nil, nil)
	result := NewSolver(nil).Solve(sc)

	require.Len(t, result.Assignments, 2)
	assert.NotEqual(t, result.Assignments[0].StaffID, result.Assignments[1].StaffID)
}

func TestSolveRespectsWeeklyHourLimit(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	lee := makeStaff(2, "Lee Line", []string{"kitchen"}, 8.0)

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

	sc := makeContext([]*domain.Staff{kim, lee}, shifts, constraints, nil)
	result := NewSolver(nil).Solve(sc)

	require.Len(t, result.Assignments, 3)
	perStaff := make(map[int64]float64)
	for _, a := range result.Assignments {
		perStaff[a.StaffID] += 8.0
	}
	for staffID, hours := range perStaff {
		assert.LessOrEqualf(t, hours, 20.0, "staff %d over the weekly limit", staffID)
	}
}

func TestSolveSpreadsLoadAcrossEquivalentStaff(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	lee := makeStaff(2, "Lee Line", []string{"kitchen"}, 8.0)

	shifts := []*domain.Shift{
		makeShift(10, monday, "09:00", "13:00", "kitchen", 1),
		makeShift(11, monday.AddDate(0, 0, 1), "09:00", "13:00", "kitchen", 1),
	}
	constraints := []*domain.SchedulingConstraint{{
		ID: 1, BusinessID: 1,
		Type:     domain.ConstraintFairDistribution,
		Priority: domain.PriorityHigh,
		IsActive: true,
	}}

	sc := makeContext([]*domain.Staff{kim, lee}, shifts, constraints, nil)
	result := NewSolver(nil).Solve(sc)

	require.Len(t, result.Assignments, 2)
	assert.NotEqual(t, result.Assignments[0].StaffID, result.Assignments[1].StaffID,
		"equivalent staff should each get one shift")
}

func TestSolveIsDeterministic(t *testing.T) {
	staff := []*domain.Staff{
		makeStaff(1, "Ana", []string{"kitchen", "server"}, 7.5),
		makeStaff(2, "Ben", []string{"kitchen"}, 7.5),
		makeStaff(3, "Cleo", []string{"server", "bartender"}, 8.5),
		makeStaff(4, "Dev", []string{"bartender"}, 6.0),
	}
	var shifts []*domain.Shift
	skills := []string{"kitchen", "server", "bartender"}
	id := int64(100)
	for day := 0; day < 3; day++ {
		for _, skill := range skills {
			shifts = append(shifts, makeShift(id, monday.AddDate(0, 0, day), "09:00", "15:00", skill, 1))
			id++
		}
	}

	solver := NewSolver(nil)
	first := solver.Solve(makeContext(staff, shifts, nil, nil))
	second := solver.Solve(makeContext(staff, shifts, nil, nil))

	require.Equal(t, len(first.Assignments), len(second.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].ShiftID, second.Assignments[i].ShiftID)
		assert.Equal(t, first.Assignments[i].StaffID, second.Assignments[i].StaffID)
		assert.Equal(t, first.Assignments[i].ConfidenceScore, second.Assignments[i].ConfidenceScore)
	}
	assert.Equal(t, first.UnassignedShifts, second.UnassignedShifts)
	assert.Equal(t, first.MeanConfidence, second.MeanConfidence)
}

func TestSolveEmptyInputs(t *testing.T) {
	result := NewSolver(nil).Solve(makeContext(nil, nil, nil, nil))
	assert.Empty(t, result.Assignments)
	assert.Empty(t, result.UnassignedShifts)
	assert.Zero(t, result.MeanConfidence)
}

func TestSolveCountsExistingAssignments(t *testing.T) {
	kim := makeStaff(1, "Kim Cook", []string{"kitchen"}, 8.0)
	lee := makeStaff(2, "Lee Line", []string{"kitchen"}, 8.0)
	shift := makeShift(10, monday, "09:00", "17:00", "kitchen", 2)

	sc := NewSchedulingContext(1, monday, monday.AddDate(0, 0, 6),
		[]*domain.Staff{kim, lee}, []*domain.Shift{shift}, nil, nil,
		[]*domain.DraftShiftAssignment{{ShiftID: 10, StaffID: 1}})

	result := NewSolver(nil).Solve(sc)

	// one slot already taken by kim, so only lee is added
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, lee.ID, result.Assignments[0].StaffID)
	assert.Empty(t, result.UnassignedShifts)
}

func TestPrioritizeShiftsOrdersByDateThenDifficulty(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	easyLater := makeShift(1, tuesday, "09:00", "17:00", "management", 3)
	hardFirst := makeShift(2, monday, "09:00", "17:00", "management", 1)
	easyFirst := makeShift(3, monday, "09:00", "17:00", "server", 1)

	sorted := NewSolver(nil).prioritizeShifts([]*domain.Shift{easyLater, easyFirst, hardFirst})

	require.Len(t, sorted, 3)
	assert.Equal(t, hardFirst.ID, sorted[0].ID, "management outranks server on the same day")
	assert.Equal(t, easyFirst.ID, sorted[1].ID)
	assert.Equal(t, easyLater.ID, sorted[2].ID, "later dates always come after earlier ones")
}
