package domain

import "time"

const NotificationTypeSlotAvailable = "slot_available"

// Notification is an inbox record created when a waitlisted user is
// promoted. Dispatch (email/push) and inbox reads live outside this service.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Link      string
	Read      bool
	CreatedAt time.Time
}
