package collab

import "log/slog"

// broadcastLocked fans a message out to every connection in the
// (business, draft) scope except excludeConnID. Delivery is best effort:
// a connection whose buffer is full or which is already dead is dropped
// and cleaned up without stalling delivery to the rest.
func (s *State) broadcastLocked(businessID, draftID int64, excludeConnID string, msg any) {
	var failed []string
	for id, conn := range s.conns {
		if id == excludeConnID || conn.BusinessID != businessID {
			continue
		}
		if draftID != 0 && conn.DraftID != draftID {
			continue
		}
		if !s.sendLocked(conn, msg) {
			failed = append(failed, id)
		}
	}

	// cleanup after iterating so the map is not mutated mid-range
	for _, id := range failed {
		slog.Warn("dropping unresponsive collab connection", "connID", id)
		s.disconnectLocked(id)
	}
}

// sendLocked enqueues a message on the connection's outbound channel
// without blocking. A false return means the connection should be
// considered gone.
func (s *State) sendLocked(conn *Connection, msg any) bool {
	if conn.dead {
		return false
	}
	select {
	case conn.outbound <- msg:
		return true
	default:
		conn.dead = true
		return false
	}
}
