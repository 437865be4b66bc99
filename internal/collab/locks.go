package collab

import "github.com/Rugbydude80/localops-ai-sub001/internal/domain"

// AcquireEditLock claims an exclusive edit lock on one resource in the
// session's scope. Acquisition is immediate accept-or-reject, never
// queued: if another user holds the lock the requester gets false plus a
// lock_conflict message naming the holder. Expired locks are swept lazily
// here rather than by a background timer.
func (s *State) AcquireEditLock(connID string, resourceType domain.EditTargetType, resourceID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[connID]
	if !ok {
		return false
	}

	s.sweepExpiredLocksLocked()

	key := lockKey{
		businessID:   conn.BusinessID,
		draftID:      conn.DraftID,
		resourceType: resourceType,
		resourceID:   resourceID,
	}

	if held, exists := s.locks[key]; exists {
		if held.UserID != conn.UserID {
			s.sendLocked(conn, domain.LockConflictMessage{
				Type:         domain.MessageLockConflict,
				Timestamp:    s.now(),
				ResourceType: resourceType,
				ResourceID:   resourceID,
				HeldByID:     held.UserID,
				HeldByName:   held.UserName,
			})
			return false
		}
		// re-acquire by the holder refreshes the expiry
		held.ExpiresAt = s.now().Add(s.opts.LockTimeout)
		return true
	}

	now := s.now()
	s.locks[key] = &domain.EditLock{
		BusinessID:   conn.BusinessID,
		DraftID:      conn.DraftID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UserID:       conn.UserID,
		UserName:     conn.UserName,
		AcquiredAt:   now,
		ExpiresAt:    now.Add(s.opts.LockTimeout),
	}

	s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.LockUpdateMessage{
		Type:         domain.MessageLockUpdate,
		Timestamp:    now,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UserID:       conn.UserID,
		UserName:     conn.UserName,
		Locked:       true,
	})
	return true
}

// ReleaseEditLock is a no-op unless the caller's user is the current holder.
func (s *State) ReleaseEditLock(connID string, resourceType domain.EditTargetType, resourceID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[connID]
	if !ok {
		return false
	}

	s.sweepExpiredLocksLocked()

	key := lockKey{
		businessID:   conn.BusinessID,
		draftID:      conn.DraftID,
		resourceType: resourceType,
		resourceID:   resourceID,
	}
	held, exists := s.locks[key]
	if !exists || held.UserID != conn.UserID {
		return false
	}

	delete(s.locks, key)
	s.broadcastLocked(conn.BusinessID, conn.DraftID, connID, domain.LockUpdateMessage{
		Type:         domain.MessageLockUpdate,
		Timestamp:    s.now(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UserID:       conn.UserID,
		UserName:     conn.UserName,
		Locked:       false,
	})
	return true
}

// LockHolder reports the current holder of a resource lock, if any.
func (s *State) LockHolder(businessID, draftID int64, resourceType domain.EditTargetType, resourceID int64) (*domain.EditLock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepExpiredLocksLocked()

	lock, ok := s.locks[lockKey{
		businessID:   businessID,
		draftID:      draftID,
		resourceType: resourceType,
		resourceID:   resourceID,
	}]
	if !ok {
		return nil, false
	}
	copied := *lock
	return &copied, true
}

func (s *State) sweepExpiredLocksLocked() {
	now := s.now()
	for key, lock := range s.locks {
		if !lock.ExpiresAt.After(now) {
			delete(s.locks, key)
			s.broadcastLocked(key.businessID, key.draftID, "", domain.LockUpdateMessage{
				Type:         domain.MessageLockUpdate,
				Timestamp:    now,
				ResourceType: key.resourceType,
				ResourceID:   key.resourceID,
				UserID:       lock.UserID,
				UserName:     lock.UserName,
				Locked:       false,
			})
		}
	}
}
