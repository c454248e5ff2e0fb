package domain

import "time"

// WaitlistEntry is a queued request for a slot on a full session.
// Authoritative ordering is (CreatedAt, ID) ascending; ID is a monotonic
// serial assigned by the store so the order stays total when CreatedAt
// collides. Position is an advisory display hint computed at read time and
// may be stale under concurrent joins.
type WaitlistEntry struct {
	ID         int64
	SessionID  string
	UserID     string
	Position   int
	Notified   bool
	NotifiedAt *time.Time
	CreatedAt  time.Time
}
