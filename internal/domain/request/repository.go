package request

import (
	"context"
	"time"
)

// RequestRepository reads approved employee requests. Pending and rejected
// requests never influence payroll.
type RequestRepository interface {
	GetApprovedShiftChanges(ctx context.Context, userID string, from, to time.Time) ([]ShiftChange, error)
	GetApprovedOvertime(ctx context.Context, userID string, from, to time.Time) ([]Overtime, error)
	// GetApprovedTimeOff returns requests whose [start_date, end_date] range
	// overlaps [from, to].
	GetApprovedTimeOff(ctx context.Context, userID string, from, to time.Time) ([]TimeOff, error)
}
