package domain

import "time"

type Shift struct {
	ID                 int64     `json:"id"`
	BusinessID         int64     `json:"businessID"`
	Date               time.Time `json:"date"`
	StartTime          string    `json:"startTime"` // "HH:MM"
	EndTime            string    `json:"endTime"`   // "HH:MM"
	RequiredSkill      string    `json:"requiredSkill"`
	RequiredStaffCount int32     `json:"requiredStaffCount"`
	HourlyRate         *float64  `json:"hourlyRate"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}
