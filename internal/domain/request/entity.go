package request

import "time"

type Type string

const (
	TypeShiftChange Type = "shift_change"
	TypeOvertime    Type = "overtime"
	TypeTimeOff     Type = "time_off"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ShiftChange - approved request that overrides the nominal shift times for
// one date. Category and day-off classification are unaffected.
type ShiftChange struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime *string // "HH:MM:SS", nil keeps the nominal start
	EndTime   *string
}

// Overtime - approved overtime span on one date. May cross midnight
// (EndTime <= StartTime means the span ends the next day).
type Overtime struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime string
	EndTime   string
}

// TimeOff - approved absence excuse covering an inclusive date range.
type TimeOff struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}

// Covers reports whether date falls within the request's range, comparing
// calendar days only. The bounds and the probed date may sit in different
// zones (SQL date columns scan at UTC midnight, period days at business-zone
// midnight), so each side is read in its own zone.
func (t TimeOff) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= t.StartDate.Format("2006-01-02") && d <= t.EndDate.Format("2006-01-02")
}
