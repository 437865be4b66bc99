package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/Rugbydude80/localops-ai-sub001/internal/repository"
	"github.com/Rugbydude80/localops-ai-sub001/internal/utils"
)

const demoBusinessID = 1

// Seed loads a demo business: a staff roster, two weeks of shifts, the
// usual business constraints and a few staff preferences.
func Seed(repo *repository.Repository) error {
	var staff []*domain.Staff
	for i := 0; i < 12; i++ {
		s := utils.GenerateRandomStaff(demoBusinessID)
		if err := repo.InsertStaff(s); err != nil {
			return fmt.Errorf("cannot insert staff: %w", err)
		}
		staff = append(staff, s)
	}
	slog.Info("seeded staff", "count", len(staff))

	start := time.Now().AddDate(0, 0, 1)
	shiftCount := 0
	for day := 0; day < 14; day++ {
		date := start.AddDate(0, 0, day)
		for i := 0; i < 3; i++ {
			shift := utils.GenerateRandomShift(demoBusinessID, date)
			if err := repo.InsertShift(shift); err != nil {
				return fmt.Errorf("cannot insert shift: %w", err)
			}
			shiftCount++
		}
	}
	slog.Info("seeded shifts", "count", shiftCount)

	constraints := []*domain.SchedulingConstraint{
		{
			BusinessID: demoBusinessID,
			Type:       domain.ConstraintMaxHoursPerWeek,
			Value:      domain.ConstraintValue{Hours: 40},
			Priority:   domain.PriorityHigh,
			IsActive:   true,
		},
		{
			BusinessID: demoBusinessID,
			Type:       domain.ConstraintMinRestBetweenShifts,
			Value:      domain.ConstraintValue{Hours: 11},
			Priority:   domain.PriorityHigh,
			IsActive:   true,
		},
		{
			BusinessID: demoBusinessID,
			Type:       domain.ConstraintSkillMatchRequired,
			Priority:   domain.PriorityCritical,
			IsActive:   true,
		},
		{
			BusinessID: demoBusinessID,
			Type:       domain.ConstraintFairDistribution,
			Priority:   domain.PriorityMedium,
			IsActive:   true,
		},
	}
	for _, c := range constraints {
		if err := repo.InsertConstraint(c); err != nil {
			return fmt.Errorf("cannot insert constraint: %w", err)
		}
	}
	slog.Info("seeded constraints", "count", len(constraints))

	// a few flavoured preferences on the first staff members
	expiry := start.AddDate(0, 3, 0)
	preferences := []*domain.StaffPreference{
		{
			StaffID:    staff[0].ID,
			Type:       domain.PreferenceMaxHours,
			Value:      domain.PreferenceValue{Hours: 30},
			Priority:   domain.PriorityMedium,
			ExpiryDate: &expiry,
			IsActive:   true,
		},
		{
			StaffID:  staff[1].ID,
			Type:     domain.PreferenceDayOff,
			Value:    domain.PreferenceValue{Days: []string{"sunday"}},
			Priority: domain.PriorityMedium,
			IsActive: true,
		},
		{
			StaffID:  staff[2].ID,
			Type:     domain.PreferenceTimeOff,
			Value:    domain.PreferenceValue{Dates: []string{start.AddDate(0, 0, 3).Format("2006-01-02")}},
			Priority: domain.PriorityHigh,
			IsActive: true,
		},
	}
	for _, p := range preferences {
		if err := repo.InsertPreference(p); err != nil {
			return fmt.Errorf("cannot insert preference: %w", err)
		}
	}
	slog.Info("seeded preferences", "count", len(preferences))

	return nil
}
