package domain

import "time"

type AttendanceStatus string

const (
	AttendanceStatusRegistered AttendanceStatus = "registered"
	AttendanceStatusAttended   AttendanceStatus = "attended"
	AttendanceStatusNoShow     AttendanceStatus = "no_show"
)

// Valid reports whether the status is one of the known values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusRegistered, AttendanceStatusAttended, AttendanceStatusNoShow:
		return true
	}
	return false
}

// AttendanceRecord is a confirmed participant of a session. At most one
// record exists per (session, user) pair; the database enforces this and
// the join transaction relies on it as the last defense against
// duplicate-join races.
type AttendanceRecord struct {
	ID         string
	SessionID  string
	UserID     string
	Status     AttendanceStatus
	MarkedAt   time.Time
	AttendedAt *time.Time
}
