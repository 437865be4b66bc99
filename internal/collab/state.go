package collab

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
	"github.com/google/uuid"
)

type Options struct {
	LockTimeout    time.Duration
	ConflictWindow time.Duration
	SendBuffer     int
}

func DefaultOptions() Options {
	return Options{
		LockTimeout:    30 * time.Second,
		ConflictWindow: 5 * time.Second,
		SendBuffer:     32,
	}
}

// Connection is one live editing session. The transport collaborator
// drains Outbound and delivers the messages however it likes; if it stops
// draining, sends to it are dropped and the connection is cleaned up.
type Connection struct {
	ID         string
	UserID     int64
	UserName   string
	BusinessID int64
	DraftID    int64

	outbound chan any
	dead     bool
}

func (c *Connection) Outbound() <-chan any {
	return c.outbound
}

type lockKey struct {
	businessID   int64
	draftID      int64
	resourceType domain.EditTargetType
	resourceID   int64
}

type draftKey struct {
	businessID int64
	draftID    int64
}

// State is the in-memory collaboration coordinator for live draft editing
// sessions. It is constructed once at process start and injected where
// needed; a restart loses all of it by design, since it is a live-session
// cache rather than a source of truth.
type State struct {
	opts Options

	mu        sync.Mutex
	conns     map[string]*Connection
	presence  map[string]*domain.UserPresence // keyed by connection ID
	locks     map[lockKey]*domain.EditLock
	edits     map[draftKey][]*domain.ScheduleEdit
	conflicts map[string]*domain.EditConflict

	now func() time.Time
}

func NewState(opts Options) *State {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultOptions().LockTimeout
	}
	if opts.ConflictWindow <= 0 {
		opts.ConflictWindow = DefaultOptions().ConflictWindow
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultOptions().SendBuffer
	}
	return &State{
		opts:      opts,
		conns:     make(map[string]*Connection),
		presence:  make(map[string]*domain.UserPresence),
		locks:     make(map[lockKey]*domain.EditLock),
		edits:     make(map[draftKey][]*domain.ScheduleEdit),
		conflicts: make(map[string]*domain.EditConflict),
		now:       time.Now,
	}
}

// ConnectUser registers a session, announces it to peers in the same
// scope, and replays current presence to the new connection.
func (s *State) ConnectUser(userID int64, userName string, businessID, draftID int64) *Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn := &Connection{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   userName,
		BusinessID: businessID,
		DraftID:    draftID,
		outbound:   make(chan any, s.opts.SendBuffer),
	}
	s.conns[conn.ID] = conn
	s.presence[conn.ID] = &domain.UserPresence{
		UserID:     userID,
		UserName:   userName,
		BusinessID: businessID,
		DraftID:    draftID,
		Action:     domain.PresenceViewing,
		LastSeen:   s.now(),
	}

	s.broadcastLocked(businessID, draftID, conn.ID, domain.PresenceUpdateMessage{
		Type:      domain.MessagePresenceUpdate,
		Timestamp: s.now(),
		UserID:    userID,
		UserName:  userName,
		Action:    domain.PresenceViewing,
		Online:    true,
	})

	s.sendLocked(conn, domain.CurrentPresenceMessage{
		Type:      domain.MessageCurrentPresence,
		Timestamp: s.now(),
		Users:     s.presenceSnapshotLocked(businessID, draftID),
	})

	slog.Info("collab session connected", "connID", conn.ID, "userID", userID, "businessID", businessID, "draftID", draftID)
	return conn
}

// UpdatePresence transitions the session's action among
// viewing/editing/idle and tells its peers.
func (s *State) UpdatePresence(connID string, action domain.PresenceAction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[connID]
	if !ok {
		return false
	}
	p := s.presence[connID]
	p.Action = action
	p.LastSeen = s.now()

	s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.PresenceUpdateMessage{
		Type:      domain.MessagePresenceUpdate,
		Timestamp: s.now(),
		UserID:    conn.UserID,
		UserName:  conn.UserName,
		Action:    action,
		Online:    true,
	})
	return true
}

// DisconnectUser releases every lock the session's user holds, removes its
// presence, closes its outbound channel, and tells its peers.
func (s *State) DisconnectUser(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectLocked(connID)
}

func (s *State) disconnectLocked(connID string) {
	conn, ok := s.conns[connID]
	if !ok {
		return
	}

	// remove before broadcasting so cleanup cannot loop back here
	delete(s.conns, connID)
	delete(s.presence, connID)
	conn.dead = true
	close(conn.outbound)

	for key, lock := range s.locks {
		if lock.UserID == conn.UserID && key.businessID == conn.BusinessID && key.draftID == conn.DraftID {
			delete(s.locks, key)
			s.broadcastLocked(key.businessID, key.draftID, connID, domain.LockUpdateMessage{
				Type:         domain.MessageLockUpdate,
				Timestamp:    s.now(),
				ResourceType: key.resourceType,
				ResourceID:   key.resourceID,
				UserID:       lock.UserID,
				UserName:     lock.UserName,
				Locked:       false,
			})
		}
	}

	s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.PresenceUpdateMessage{
		Type:      domain.MessagePresenceUpdate,
		Timestamp: s.now(),
		UserID:    conn.UserID,
		UserName:  conn.UserName,
		Action:    domain.PresenceIdle,
		Online:    false,
	})

	slog.Info("collab session disconnected", "connID", connID, "userID", conn.UserID)
}

// Presence returns a snapshot of who is in the given scope.
func (s *State) Presence(businessID, draftID int64) []domain.UserPresence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presenceSnapshotLocked(businessID, draftID)
}

func (s *State) presenceSnapshotLocked(businessID, draftID int64) []domain.UserPresence {
	users := make([]domain.UserPresence, 0, len(s.presence))
	for connID, p := range s.presence {
		conn := s.conns[connID]
		if conn == nil || conn.BusinessID != businessID {
			continue
		}
		if draftID != 0 && conn.DraftID != draftID {
			continue
		}
		users = append(users, *p)
	}
	return users
}
