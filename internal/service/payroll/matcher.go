package payroll

import (
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
)

// Matching windows around the scheduled shift. Taps outside the window belong
// to a neighbouring day's shift and are ignored.
const (
	matchWindowBefore = 6 * time.Hour
	matchWindowAfter  = 8 * time.Hour

	// Check-ins earlier than this before the scheduled start are treated as
	// leftovers from a previous shift unless nothing better exists.
	earlyCheckinFloor = 90 * time.Minute
)

// attendancePair is the in/out tap pair attributed to one scheduled day.
type attendancePair struct {
	In     time.Time
	Out    time.Time
	HasIn  bool
	HasOut bool
}

// matchPair attributes raw events to the shift scheduled at
// [schedStart, schedEnd]. The check-in closest to the scheduled start wins,
// with ties broken toward the earlier tap; the checkout is the first tap
// strictly after the chosen check-in. A lone checkout is still reported so the
// caller can distinguish a missing check-in from a fully absent day.
func matchPair(events []attendance.Event, schedStart, schedEnd time.Time) attendancePair {
	winStart := schedStart.Add(-matchWindowBefore)
	winEnd := schedEnd.Add(matchWindowAfter)
	floor := schedStart.Add(-earlyCheckinFloor)

	var checkins, checkouts []time.Time
	for _, e := range events {
		if e.RecordedAt.Before(winStart) || e.RecordedAt.After(winEnd) {
			continue
		}
		switch e.Type {
		case attendance.EventCheckIn:
			checkins = append(checkins, e.RecordedAt)
		case attendance.EventCheckOut:
			checkouts = append(checkouts, e.RecordedAt)
		}
	}

	var pair attendancePair

	var best time.Time
	var bestDelta time.Duration
	for _, t := range checkins {
		if t.Before(floor) {
			continue
		}
		delta := t.Sub(schedStart)
		if delta < 0 {
			delta = -delta
		}
		if !pair.HasIn || delta < bestDelta {
			pair.HasIn = true
			best = t
			bestDelta = delta
		}
	}
	if !pair.HasIn && len(checkins) > 0 {
		pair.HasIn = true
		best = checkins[len(checkins)-1]
	}
	pair.In = best

	for _, t := range checkouts {
		if pair.HasIn && !t.After(pair.In) {
			continue
		}
		pair.HasOut = true
		pair.Out = t
		break
	}

	return pair
}

// manualPair builds the pair from an approved manual attendance record.
// Preferred over raw events when the raw match produced no check-in.
func manualPair(date time.Time, m attendance.ManualAttendance, loc *time.Location) (attendancePair, error) {
	var pair attendancePair

	if m.CheckinTime != "" {
		in, err := clockOn(date, m.CheckinTime, loc)
		if err != nil {
			return attendancePair{}, err
		}
		pair.In = in
		pair.HasIn = true
	}
	if m.CheckoutTime != "" {
		out, err := clockOn(date, m.CheckoutTime, loc)
		if err != nil {
			return attendancePair{}, err
		}
		if pair.HasIn && !out.After(pair.In) {
			out = out.Add(24 * time.Hour)
		}
		pair.Out = out
		pair.HasOut = true
	}

	return pair, nil
}

// classifyDay decides presence from the matched pair. An empty reason means
// the day counts as present.
func classifyDay(pair attendancePair) (present bool, reason string) {
	switch {
	case !pair.HasIn && !pair.HasOut:
		return false, payroll.AbsenceNoAttendance
	case !pair.HasIn:
		return false, payroll.AbsenceMissingCheckin
	case !pair.HasOut:
		return false, payroll.AbsenceMissingCheckout
	case !pair.Out.After(pair.In):
		return false, payroll.AbsenceMissingCheckout
	}
	return true, ""
}
