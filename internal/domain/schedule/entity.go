package schedule

import (
	"strings"
	"time"
)

// Entry - one assigned shift row for a (user, date). The source table may
// contain several rows for the same date (e.g. a day-off placeholder next to
// a working shift); the resolver in the payroll service deduplicates them.
type Entry struct {
	Date         time.Time // calendar date, midnight in the business time zone
	CategoryID   string
	CategoryName string
	TimeStart    string // "HH:MM:SS", empty for off categories
	TimeEnd      string
}

// Categories that mark a date as not-a-workday. Closed set; matched
// case-insensitively against the category name.
var offCategories = map[string]struct{}{
	"dayoff":            {},
	"time off":          {},
	"holiday":           {},
	"manual attendance": {},
	"sick":              {},
}

// IsDayOff reports whether the entry's category classifies the date as off.
func (e Entry) IsDayOff() bool {
	_, off := offCategories[strings.ToLower(strings.TrimSpace(e.CategoryName))]
	return off
}
