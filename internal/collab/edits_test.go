package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func TestRecordEditBroadcastsToPeers(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)
	drain(alice)
	drain(bob)

	edit, conflicts := s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})

	require.NotNil(t, edit)
	assert.NotEmpty(t, edit.ID)
	assert.Equal(t, int64(1), edit.UserID)
	assert.Empty(t, conflicts)

	assert.Empty(t, drain(alice), "the actor must not receive its own edit")
	updates := messagesOfType[domain.EditUpdateMessage](drain(bob))
	require.Len(t, updates, 1)
	assert.Equal(t, edit.ID, updates[0].Edit.ID)
}

func TestRecordEditDetectsConcurrentModification(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)
	drain(alice)
	drain(bob)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 6})

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictConcurrentModification, conflicts[0].Type)
	assert.Equal(t, domain.ResolutionLastWriteWins, conflicts[0].Strategy)
	assert.False(t, conflicts[0].Resolved)

	detected := messagesOfType[domain.ConflictDetectedMessage](drain(alice))
	require.Len(t, detected, 1, "the other party is told about the conflict")
	assert.Equal(t, conflicts[0].ID, detected[0].Conflict.ID)
}

func TestRecordEditDetectsDuplicateOperation(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictDuplicateOperation, conflicts[0].Type)
}

func TestRecordEditDetectsConcurrentAssignment(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	// the same staff member placed on two different shifts at once
	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpAssignStaff, domain.TargetShift, 43, domain.EditPayload{StaffID: 5})

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictConcurrentAssignment, conflicts[0].Type)
}

func TestRecordEditNoConflictCases(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	// same user editing the same target twice is not a conflict
	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(alice.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	assert.Empty(t, conflicts)

	// different targets, different staff
	_, conflicts = s.RecordEdit(bob.ID, domain.OpAssignStaff, domain.TargetShift, 43, domain.EditPayload{StaffID: 6})
	assert.Empty(t, conflicts)

	// update_shift carries no staff, so the cross-shift case cannot fire
	_, conflicts = s.RecordEdit(bob.ID, domain.OpUpdateShift, domain.TargetShift, 44, domain.EditPayload{})
	assert.Empty(t, conflicts)
}

func TestRecordEditOutsideLookbackWindow(t *testing.T) {
	clock := newFakeClock()
	s := newTestState(clock)

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	clock.Advance(6 * time.Second)
	_, conflicts := s.RecordEdit(bob.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})

	assert.Empty(t, conflicts, "edits older than the lookback are not conflicts")
}

func TestRecordEditScopedToDraft(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 8)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})

	assert.Empty(t, conflicts, "edits in different drafts never conflict")
}

func TestPendingAndResolveConflict(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	require.Len(t, conflicts, 1)

	pending := s.PendingConflicts(100, 7)
	require.Len(t, pending, 1)
	assert.Equal(t, conflicts[0].ID, pending[0].ID)
	drain(alice)
	drain(bob)

	resolvedConflict, ok := s.ResolveConflict(100, conflicts[0].ID, domain.ResolutionAcceptEdit2)
	require.True(t, ok)
	assert.Equal(t, int64(7), resolvedConflict.DraftID)
	assert.True(t, resolvedConflict.Resolved)
	assert.Empty(t, s.PendingConflicts(100, 7))

	// resolution is broadcast to everyone in scope
	for _, conn := range []*Connection{alice, bob} {
		resolved := messagesOfType[domain.ConflictResolvedMessage](drain(conn))
		require.Len(t, resolved, 1)
		assert.Equal(t, conflicts[0].ID, resolved[0].ConflictID)
		assert.Equal(t, domain.ResolutionAcceptEdit2, resolved[0].Resolution)
	}

	// resolving twice fails: the record is gone
	_, ok = s.ResolveConflict(100, conflicts[0].ID, domain.ResolutionAcceptEdit2)
	assert.False(t, ok)
}

func TestResolveConflictWrongBusiness(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	s.RecordEdit(alice.ID, domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	_, conflicts := s.RecordEdit(bob.ID, domain.OpUnassignStaff, domain.TargetShift, 42, domain.EditPayload{StaffID: 5})
	require.Len(t, conflicts, 1)

	// another business cannot resolve it, and the record stays open
	_, ok := s.ResolveConflict(200, conflicts[0].ID, domain.ResolutionAcceptEdit1)
	assert.False(t, ok)
	assert.Len(t, s.PendingConflicts(100, 7), 1)
}

func TestRecordEditUnknownConnection(t *testing.T) {
	s := newTestState(newFakeClock())
	edit, conflicts := s.RecordEdit("no-such-conn", domain.OpAssignStaff, domain.TargetShift, 42, domain.EditPayload{})
	assert.Nil(t, edit)
	assert.Nil(t, conflicts)
}
