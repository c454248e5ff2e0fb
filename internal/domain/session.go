package domain

import "time"

// Session is a scheduled pickup-sports session with optional capacity.
// MaxParticipants == nil means unlimited.
type Session struct {
	ID              string
	Title           string
	Sport           string
	StartsAt        time.Time
	MaxParticipants *int
	CreatedAt       time.Time
}

// Upcoming reports whether the session has not started yet.
func (s Session) Upcoming(now time.Time) bool {
	return s.StartsAt.After(now)
}
