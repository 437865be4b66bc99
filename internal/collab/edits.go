package collab

import (
	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/google/uuid"
)

// RecordEdit stores a timestamped edit and scans other users' recent edits
// to the same draft for conflicts. The lookback is bounded by the conflict
// window so detection stays O(recent edits). The edit and any detected
// conflicts are broadcast to the draft's peers, excluding the actor.
func (s *State) RecordEdit(
	connID string,
	operation domain.EditOperation,
	targetType domain.EditTargetType,
	targetID int64,
	payload domain.EditPayload,
) (*domain.ScheduleEdit, []*domain.EditConflict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[connID]
	if !ok {
		return nil, nil
	}

	now := s.now()
	edit := &domain.ScheduleEdit{
		ID:         uuid.NewString(),
		BusinessID: conn.BusinessID,
		DraftID:    conn.DraftID,
		UserID:     conn.UserID,
		UserName:   conn.UserName,
		Operation:  operation,
		TargetType: targetType,
		TargetID:   targetID,
		Payload:    payload,
		Timestamp:  now,
	}

	dk := draftKey{businessID: conn.BusinessID, draftID: conn.DraftID}

	// prune everything older than the lookback before scanning
	recent := s.edits[dk][:0]
	for _, other := range s.edits[dk] {
		if now.Sub(other.Timestamp) <= s.opts.ConflictWindow {
			recent = append(recent, other)
		}
	}
	s.edits[dk] = recent

	var detected []*domain.EditConflict
	for _, other := range s.edits[dk] {
		if other.UserID == edit.UserID {
			continue
		}
		conflictType, found := classifyConflict(other, edit)
		if !found {
			continue
		}
		conflict := &domain.EditConflict{
			ID:         uuid.NewString(),
			BusinessID: conn.BusinessID,
			DraftID:    conn.DraftID,
			Edit1:      *other,
			Edit2:      *edit,
			Type:       conflictType,
			Strategy:   domain.ResolutionLastWriteWins,
			DetectedAt: now,
		}
		s.conflicts[conflict.ID] = conflict
		detected = append(detected, conflict)
	}

	s.edits[dk] = append(s.edits[dk], edit)

	s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.EditUpdateMessage{
		Type:      domain.MessageEditUpdate,
		Timestamp: now,
		Edit:      *edit,
	})
	for _, conflict := range detected {
		s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.ConflictDetectedMessage{
			Type:      domain.MessageConflictDetected,
			Timestamp: now,
			Conflict:  *conflict,
		})
	}

	return edit, detected
}

// classifyConflict decides whether two near-simultaneous edits by
// different users collide. Same-target collisions take precedence over the
// cross-shift staff-assignment case.
func classifyConflict(a, b *domain.ScheduleEdit) (domain.ConflictType, bool) {
	if a.TargetType == b.TargetType && a.TargetID == b.TargetID {
		if a.Operation != b.Operation {
			return domain.ConflictConcurrentModification, true
		}
		return domain.ConflictDuplicateOperation, true
	}
	if a.Operation.IsStaffAssignment() && b.Operation.IsStaffAssignment() &&
		a.Payload.StaffID != 0 && a.Payload.StaffID == b.Payload.StaffID {
		return domain.ConflictConcurrentAssignment, true
	}
	return "", false
}

// PendingConflicts returns the open conflicts for a draft.
func (s *State) PendingConflicts(businessID, draftID int64) []*domain.EditConflict {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*domain.EditConflict
	for _, c := range s.conflicts {
		if c.BusinessID == businessID && c.DraftID == draftID {
			copied := *c
			pending = append(pending, &copied)
		}
	}
	return pending
}

// ResolveConflict applies an explicit outcome to an open conflict,
// broadcasts the resolution to the draft's scope, and discards the record.
// Conflicts are never auto-resolved: the default last_write_wins strategy
// is advisory until a caller decides. A conflict belonging to another
// business is treated as not found, and the resolved record is returned so
// callers can act on its draft.
func (s *State) ResolveConflict(businessID int64, conflictID string, resolution domain.ResolutionStrategy) (*domain.EditConflict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conflict, ok := s.conflicts[conflictID]
	if !ok || conflict.BusinessID != businessID {
		return nil, false
	}

	conflict.Resolved = true
	delete(s.conflicts, conflictID)

	s.broadcastLocked(conflict.BusinessID, conflict.DraftID, "", domain.ConflictResolvedMessage{
		Type:       domain.MessageConflictResolved,
		Timestamp:  s.now(),
		ConflictID: conflictID,
		Resolution: resolution,
	})
	resolved := *conflict
	return &resolved, true
}
