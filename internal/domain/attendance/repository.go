package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetEventsBetween returns raw clock events recorded within [from, to),
	// ordered by recorded_at ascending.
	GetEventsBetween(ctx context.Context, userID string, from, to time.Time) ([]Event, error)
	// GetApprovedManualInRange returns approved manual corrections whose date
	// falls within [from, to] inclusive.
	GetApprovedManualInRange(ctx context.Context, userID string, from, to time.Time) ([]ManualAttendance, error)
}
