package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check-ins this long after the scheduled end are treated as a mismatch, not
// lateness.
const latePlausibilityGrace = 2 * time.Hour

// penaltyTier maps effective minutes to the flat deduction amount.
func penaltyTier(minutes int) decimal.Decimal {
	switch {
	case minutes < 5:
		return decimal.Zero
	case minutes <= 10:
		return decimal.NewFromInt(5000)
	case minutes <= 30:
		return decimal.NewFromInt(10000)
	case minutes <= 60:
		return decimal.NewFromInt(25000)
	}
	return decimal.NewFromInt(50000)
}

// lateMinutes is the raw lateness of a check-in against the scheduled start,
// before tolerance.
func lateMinutes(in, schedStart, schedEnd time.Time) int {
	if !in.After(schedStart) {
		return 0
	}
	if in.After(schedEnd.Add(latePlausibilityGrace)) {
		return 0
	}
	return int(in.Sub(schedStart) / time.Minute)
}

// earlyLeaveMinutes is how early the checkout is against the scheduled end.
// Only meaningful for a valid pair (out after in); the caller guards that.
func earlyLeaveMinutes(out, schedEnd time.Time) int {
	if !out.Before(schedEnd) {
		return 0
	}
	return int(schedEnd.Sub(out) / time.Minute)
}
