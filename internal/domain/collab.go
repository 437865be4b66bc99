package domain

import "time"

type PresenceAction string

const (
	PresenceViewing PresenceAction = "viewing"
	PresenceEditing PresenceAction = "editing"
	PresenceIdle    PresenceAction = "idle"
)

// UserPresence is an ephemeral per-connection record. It lives only in the
// collaboration manager's memory and is lost on process restart.
type UserPresence struct {
	UserID     int64          `json:"userID"`
	UserName   string         `json:"userName"`
	BusinessID int64          `json:"businessID"`
	DraftID    int64          `json:"draftID"`
	Action     PresenceAction `json:"action"`
	LastSeen   time.Time      `json:"lastSeen"`
}

type EditOperation string

const (
	OpAssignStaff      EditOperation = "assign_staff"
	OpUnassignStaff    EditOperation = "unassign_staff"
	OpSwapStaff        EditOperation = "swap_staff"
	OpCreateShift      EditOperation = "create_shift"
	OpUpdateShift      EditOperation = "update_shift"
	OpDeleteShift      EditOperation = "delete_shift"
	OpUpdateAssignment EditOperation = "update_assignment"
)

// IsStaffAssignment reports whether the operation moves a staff member on
// or off a shift, which matters for cross-shift conflict detection.
func (op EditOperation) IsStaffAssignment() bool {
	switch op {
	case OpAssignStaff, OpUnassignStaff, OpSwapStaff:
		return true
	}
	return false
}

type EditTargetType string

const (
	TargetShift      EditTargetType = "shift"
	TargetAssignment EditTargetType = "assignment"
	TargetDraft      EditTargetType = "draft"
)

type EditPayload struct {
	StaffID int64  `json:"staffID,omitempty"`
	ShiftID int64  `json:"shiftID,omitempty"`
	Note    string `json:"note,omitempty"`
}

// ScheduleEdit records one collaborative mutation. It is kept in memory
// only long enough to detect conflicts with near-simultaneous edits.
type ScheduleEdit struct {
	ID         string         `json:"id"`
	BusinessID int64          `json:"businessID"`
	DraftID    int64          `json:"draftID"`
	UserID     int64          `json:"userID"`
	UserName   string         `json:"userName"`
	Operation  EditOperation  `json:"operation"`
	TargetType EditTargetType `json:"targetType"`
	TargetID   int64          `json:"targetID"`
	Payload    EditPayload    `json:"payload"`
	Timestamp  time.Time      `json:"timestamp"`
}

type ConflictType string

const (
	ConflictConcurrentModification ConflictType = "concurrent_modification"
	ConflictDuplicateOperation     ConflictType = "duplicate_operation"
	ConflictConcurrentAssignment   ConflictType = "concurrent_assignment"
)

type ResolutionStrategy string

const (
	ResolutionLastWriteWins ResolutionStrategy = "last_write_wins"
	ResolutionAcceptEdit1   ResolutionStrategy = "accept_edit1"
	ResolutionAcceptEdit2   ResolutionStrategy = "accept_edit2"
	ResolutionMerge         ResolutionStrategy = "merge"
)

// EditConflict pairs two overlapping edits. It carries a default strategy
// but stays open until a caller explicitly resolves it.
type EditConflict struct {
	ID         string             `json:"id"`
	BusinessID int64              `json:"businessID"`
	DraftID    int64              `json:"draftID"`
	Edit1      ScheduleEdit       `json:"edit1"`
	Edit2      ScheduleEdit       `json:"edit2"`
	Type       ConflictType       `json:"type"`
	Strategy   ResolutionStrategy `json:"strategy"`
	Resolved   bool               `json:"resolved"`
	DetectedAt time.Time          `json:"detectedAt"`
}

// EditLock is an exclusive, time-bounded editing claim on one resource
// within one draft.
type EditLock struct {
	BusinessID   int64          `json:"businessID"`
	DraftID      int64          `json:"draftID"`
	ResourceType EditTargetType `json:"resourceType"`
	ResourceID   int64          `json:"resourceID"`
	UserID       int64          `json:"userID"`
	UserName     string         `json:"userName"`
	AcquiredAt   time.Time      `json:"acquiredAt"`
	ExpiresAt    time.Time      `json:"expiresAt"`
}
