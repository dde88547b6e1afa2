package payroll

import (
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/gajihub/payroll-backend-go/internal/domain/schedule"
)

// daySchedule is the resolved shift for one calendar date after merging
// duplicate assignment rows and applying approved shift changes.
type daySchedule struct {
	Date       time.Time
	Off        bool
	StartClock string
	EndClock   string
	Start      time.Time // zero when Off
	End        time.Time // End > Start; next-day when the shift crosses midnight
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// clockOn composes a "HH:MM:SS" clock value with a calendar date in loc.
func clockOn(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// resolveSchedule collapses assignment rows to one shift per date and applies
// shift-change overrides. A date with any off-category row is off regardless
// of row order. Overrides only retime working days; they never turn an off
// day into a working one.
func resolveSchedule(entries []schedule.Entry, overrides []request.ShiftChange, loc *time.Location) (map[string]daySchedule, error) {
	days := make(map[string]daySchedule, len(entries))

	for _, e := range entries {
		key := dayKey(e.Date)
		ds, ok := days[key]
		if ok && (ds.Off || !e.IsDayOff()) {
			continue
		}
		days[key] = daySchedule{
			Date:       e.Date,
			Off:        e.IsDayOff() || e.TimeStart == "" || e.TimeEnd == "",
			StartClock: e.TimeStart,
			EndClock:   e.TimeEnd,
		}
	}

	for _, sc := range overrides {
		ds, ok := days[dayKey(sc.Date)]
		if !ok || ds.Off {
			continue
		}
		if sc.StartTime != nil {
			ds.StartClock = *sc.StartTime
		}
		if sc.EndTime != nil {
			ds.EndClock = *sc.EndTime
		}
		days[dayKey(sc.Date)] = ds
	}

	for key, ds := range days {
		if ds.Off {
			continue
		}
		start, err := clockOn(ds.Date, ds.StartClock, loc)
		if err != nil {
			return nil, err
		}
		end, err := clockOn(ds.Date, ds.EndClock, loc)
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}
		ds.Start = start
		ds.End = end
		days[key] = ds
	}

	return days, nil
}
