package payroll

import "time"

// Period is the pay period for a (year, month): the 26th of the previous
// calendar month through the 25th of the target month, inclusive. Both
// bounds are calendar dates at midnight in the business time zone. Derived,
// never persisted.
type Period struct {
	Year  int
	Month int
	Start time.Time
	End   time.Time
}

// ResolvePeriod computes the pay period for (year, month) in loc.
// time.Date normalizes month 0 to December of the previous year, so the
// January case needs no special handling.
func ResolvePeriod(year, month int, loc *time.Location) (Period, error) {
	if year < 1 || month < 1 || month > 12 {
		return Period{}, ErrInvalidPeriod
	}

	end := time.Date(year, time.Month(month), 25, 0, 0, 0, 0, loc)
	start := time.Date(year, time.Month(month)-1, 26, 0, 0, 0, 0, loc)

	return Period{
		Year:  year,
		Month: month,
		Start: start,
		End:   end,
	}, nil
}

// Dates enumerates every calendar day of the period in order, inclusive of
// both bounds.
func (p Period) Dates() []time.Time {
	var dates []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Contains reports whether the calendar date t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
