package attendance

import "time"

type EventType string

const (
	EventCheckIn  EventType = "checkin"
	EventCheckOut EventType = "checkout"
)

// Event - one raw clock tap. The attendance log is the source of truth for
// what actually happened at the machine.
type Event struct {
	ID         string
	UserID     string
	Type       EventType
	RecordedAt time.Time
}

// ManualAttendance - an approved after-the-fact correction ("susulan").
// When present for a date it is preferred over raw events as the
// authoritative in/out pair.
type ManualAttendance struct {
	ID           string
	UserID       string
	Date         time.Time
	CheckinTime  string // "HH:MM:SS" on Date
	CheckoutTime string // "HH:MM:SS"; next day when <= CheckinTime
	Status       string
}
