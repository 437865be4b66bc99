package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

// fakeClock lets tests advance the manager's notion of time to exercise
// lock expiry and the conflict lookback without sleeping.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestState(clock *fakeClock) *State {
	s := NewState(DefaultOptions())
	s.now = clock.Now
	return s
}

// drain empties everything currently buffered on a connection's outbound
// channel.
func drain(conn *Connection) []any {
	var msgs []any
	for {
		select {
		case m, ok := <-conn.Outbound():
			if !ok {
				return msgs
			}
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func messagesOfType[T any](msgs []any) []T {
	var out []T
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func TestConnectUserAnnouncesAndReplaysPresence(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)

	aliceMsgs := drain(alice)
	updates := messagesOfType[domain.PresenceUpdateMessage](aliceMsgs)
	require.Len(t, updates, 1, "alice should hear about bob joining")
	assert.Equal(t, int64(2), updates[0].UserID)
	assert.True(t, updates[0].Online)

	bobMsgs := drain(bob)
	current := messagesOfType[domain.CurrentPresenceMessage](bobMsgs)
	require.Len(t, current, 1, "bob should receive the presence snapshot")
	assert.Len(t, current[0].Users, 2)
}

func TestConnectUserScopesByDraft(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	drain(alice)
	s.ConnectUser(2, "Bob", 100, 8) // different draft

	assert.Empty(t, messagesOfType[domain.PresenceUpdateMessage](drain(alice)),
		"presence in another draft must not reach alice")
	assert.Len(t, s.Presence(100, 7), 1)
	assert.Len(t, s.Presence(100, 8), 1)
}

func TestUpdatePresenceBroadcastsToPeersOnly(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)
	drain(alice)
	drain(bob)

	require.True(t, s.UpdatePresence(alice.ID, domain.PresenceEditing))

	assert.Empty(t, drain(alice), "the actor must not receive its own update")
	updates := messagesOfType[domain.PresenceUpdateMessage](drain(bob))
	require.Len(t, updates, 1)
	assert.Equal(t, domain.PresenceEditing, updates[0].Action)

	assert.False(t, s.UpdatePresence("no-such-conn", domain.PresenceIdle))
}

func TestDisconnectUserReleasesLocksAndNotifies(t *testing.T) {
	s := newTestState(newFakeClock())

	alice := s.ConnectUser(1, "Alice", 100, 7)
	bob := s.ConnectUser(2, "Bob", 100, 7)
	require.True(t, s.AcquireEditLock(alice.ID, domain.TargetShift, 42))
	drain(alice)
	drain(bob)

	s.DisconnectUser(alice.ID)

	bobMsgs := drain(bob)
	lockUpdates := messagesOfType[domain.LockUpdateMessage](bobMsgs)
	require.Len(t, lockUpdates, 1)
	assert.False(t, lockUpdates[0].Locked)
	assert.Equal(t, int64(42), lockUpdates[0].ResourceID)

	presence := messagesOfType[domain.PresenceUpdateMessage](bobMsgs)
	require.Len(t, presence, 1)
	assert.False(t, presence[0].Online)

	_, held := s.LockHolder(100, 7, domain.TargetShift, 42)
	assert.False(t, held, "disconnect must release the user's locks")
	assert.Len(t, s.Presence(100, 7), 1)

	// alice's channel is closed
	_, open := <-alice.Outbound()
	assert.False(t, open)

	// bob can now take the lock
	assert.True(t, s.AcquireEditLock(bob.ID, domain.TargetShift, 42))
}

func TestBroadcastDropsUnresponsiveConnection(t *testing.T) {
	opts := DefaultOptions()
	opts.SendBuffer = 1
	s := NewState(opts)
	s.now = newFakeClock().Now

	alice := s.ConnectUser(1, "Alice", 100, 7)
	drain(alice)
	s.ConnectUser(2, "Bob", 100, 7)
	drain(alice)

	// bob never drains: his buffer already holds the presence snapshot,
	// so the next broadcast to him cannot be enqueued
	s.UpdatePresence(alice.ID, domain.PresenceEditing)

	remaining := s.Presence(100, 7)
	require.Len(t, remaining, 1, "the stalled connection is cleaned up")
	assert.Equal(t, "Alice", remaining[0].UserName)
}
