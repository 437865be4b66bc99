package domain

import "time"

// Wire messages produced by the collaboration manager. Each is a flat
// object with a type discriminator and a timestamp; a transport
// collaborator (e.g. a WebSocket gateway) marshals and delivers them.
const (
	MessagePresenceUpdate   = "presence_update"
	MessageCurrentPresence  = "current_presence"
	MessageLockConflict     = "lock_conflict"
	MessageLockUpdate       = "lock_update"
	MessageEditUpdate       = "edit_update"
	MessageConflictDetected = "conflict_detected"
	MessageConflictResolved = "conflict_resolved"
)

type PresenceUpdateMessage struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    int64          `json:"userID"`
	UserName  string         `json:"userName"`
	Action    PresenceAction `json:"action"`
	Online    bool           `json:"online"`
}

type CurrentPresenceMessage struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Users     []UserPresence `json:"users"`
}

type LockConflictMessage struct {
	Type         string         `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	ResourceType EditTargetType `json:"resourceType"`
	ResourceID   int64          `json:"resourceID"`
	HeldByID     int64          `json:"heldByID"`
	HeldByName   string         `json:"heldByName"`
}

type LockUpdateMessage struct {
	Type         string         `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	ResourceType EditTargetType `json:"resourceType"`
	ResourceID   int64          `json:"resourceID"`
	UserID       int64          `json:"userID"`
	UserName     string         `json:"userName"`
	Locked       bool           `json:"locked"`
}

type EditUpdateMessage struct {
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Edit      ScheduleEdit `json:"edit"`
}

type ConflictDetectedMessage struct {
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Conflict  EditConflict `json:"conflict"`
}

type ConflictResolvedMessage struct {
	Type       string             `json:"type"`
	Timestamp  time.Time          `json:"timestamp"`
	ConflictID string             `json:"conflictID"`
	Resolution ResolutionStrategy `json:"resolution"`
}
