package domain

import (
	"slices"
	"time"
)

// TimeWindow is a clock interval within a single day, times in "HH:MM".
type TimeWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Staff struct {
	ID               int64                   `json:"id"`
	BusinessID       int64                   `json:"businessID"`
	Name             string                  `json:"name"`
	Skills           []string                `json:"skills"`
	Availability     map[string][]TimeWindow `json:"availability"` // lowercase weekday -> windows
	ReliabilityScore float64                 `json:"reliabilityScore"` // 0 - 10
	IsActive         bool                    `json:"isActive"`
	HourlyRate       *float64                `json:"hourlyRate"`
	CreatedAt        time.Time               `json:"createdAt"`
	Version          int32                   `json:"-"`
}

func (s *Staff) HasSkill(skill string) bool {
	return slices.Contains(s.Skills, skill)
}
