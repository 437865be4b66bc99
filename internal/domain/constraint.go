package domain

import "time"

type ConstraintType string

const (
	ConstraintMaxHoursPerWeek      ConstraintType = "max_hours_per_week"
	ConstraintMinRestBetweenShifts ConstraintType = "min_rest_between_shifts"
	ConstraintSkillMatchRequired   ConstraintType = "skill_match_required"
	ConstraintFairDistribution     ConstraintType = "fair_distribution"
	ConstraintMaxConsecutiveDays   ConstraintType = "max_consecutive_days"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ConstraintValue is the structured payload of a constraint. Which fields
// are meaningful depends on the constraint type.
type ConstraintValue struct {
	Hours float64 `json:"hours,omitempty"`
	Days  int32   `json:"days,omitempty"`
}

type SchedulingConstraint struct {
	ID         int64           `json:"id"`
	BusinessID int64           `json:"businessID"`
	Type       ConstraintType  `json:"type"`
	Value      ConstraintValue `json:"value"`
	Priority   Priority        `json:"priority"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	Version    int32           `json:"-"`
}
