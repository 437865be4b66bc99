package domain

import "time"

type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusPublished DraftStatus = "published"
)

type ScheduleDraft struct {
	ID         int64       `json:"id"`
	BusinessID int64       `json:"businessID"`
	Name       string      `json:"name"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Status     DraftStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	Version    int32       `json:"-"`
}

type DraftShiftAssignment struct {
	ID               int64     `json:"id"`
	DraftID          int64     `json:"draftID"`
	ShiftID          int64     `json:"shiftID"`
	StaffID          int64     `json:"staffID"`
	ConfidenceScore  float64   `json:"confidenceScore"` // 0 - 1
	Reasoning        string    `json:"reasoning"`
	IsAIGenerated    bool      `json:"isAIGenerated"`
	IsManualOverride bool      `json:"isManualOverride"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}
