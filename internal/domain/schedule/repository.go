package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	// GetEntriesInRange returns all assignment rows whose date falls within
	// [from, to] inclusive, joined with their category. Duplicate rows per
	// date are returned as-is.
	GetEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]Entry, error)
}
