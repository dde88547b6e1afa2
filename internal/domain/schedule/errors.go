package schedule

import "errors"

var (
	ErrNoScheduleFound = errors.New("no schedule found for period")
)
