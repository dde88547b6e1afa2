package payroll

import (
	"testing"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tap(eventType attendance.EventType, at time.Time) attendance.Event {
	return attendance.Event{ID: "ev-" + at.Format("150405"), UserID: "user-1", Type: eventType, RecordedAt: at}
}

func TestMatchPair_PicksCheckinClosestToScheduledStart(t *testing.T) {
	t.Parallel()

	schedStart := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)
	schedEnd := time.Date(2025, 8, 4, 17, 0, 0, 0, wib)

	events := []attendance.Event{
		tap(attendance.EventCheckIn, schedStart.Add(-60*time.Minute)), // 07:00
		tap(attendance.EventCheckIn, schedStart.Add(-2*time.Minute)),  // 07:58
		tap(attendance.EventCheckOut, schedEnd.Add(5*time.Minute)),    // 17:05
	}

	pair := matchPair(events, schedStart, schedEnd)

	require.True(t, pair.HasIn)
	assert.Equal(t, schedStart.Add(-2*time.Minute), pair.In)
	require.True(t, pair.HasOut)
	assert.Equal(t, schedEnd.Add(5*time.Minute), pair.Out)
}

func TestMatchPair_TieBreaksTowardEarlierCheckin(t *testing.T) {
	t.Parallel()

	schedStart := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)
	schedEnd := time.Date(2025, 8, 4, 17, 0, 0, 0, wib)

	events := []attendance.Event{
		tap(attendance.EventCheckIn, schedStart.Add(-10*time.Minute)),
		tap(attendance.EventCheckIn, schedStart.Add(10*time.Minute)),
	}

	pair := matchPair(events, schedStart, schedEnd)

	require.True(t, pair.HasIn)
	assert.Equal(t, schedStart.Add(-10*time.Minute), pair.In)
}

func TestMatchPair_IgnoresTapsOutsideWindow(t *testing.T) {
	t.Parallel()

	schedStart := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)
	schedEnd := time.Date(2025, 8, 4, 17, 0, 0, 0, wib)

	events := []attendance.Event{
		tap(attendance.EventCheckIn, schedStart.Add(-7*time.Hour)),
		tap(attendance.EventCheckOut, schedEnd.Add(9*time.Hour)),
	}

	pair := matchPair(events, schedStart, schedEnd)

	assert.False(t, pair.HasIn)
	assert.False(t, pair.HasOut)
}

func TestMatchPair_LoneCheckoutIsReported(t *testing.T) {
	t.Parallel()

	schedStart := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)
	schedEnd := time.Date(2025, 8, 4, 17, 0, 0, 0, wib)

	events := []attendance.Event{
		tap(attendance.EventCheckOut, schedEnd.Add(-30*time.Minute)),
	}

	pair := matchPair(events, schedStart, schedEnd)

	assert.False(t, pair.HasIn)
	require.True(t, pair.HasOut)

	present, reason := classifyDay(pair)
	assert.False(t, present)
	assert.Equal(t, payroll.AbsenceMissingCheckin, reason)
}

func TestMatchPair_VeryEarlyCheckinUsedOnlyAsLastResort(t *testing.T) {
	t.Parallel()

	schedStart := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)
	schedEnd := time.Date(2025, 8, 4, 17, 0, 0, 0, wib)

	// 04:00 is inside the window but below the early floor.
	early := tap(attendance.EventCheckIn, schedStart.Add(-4*time.Hour))

	pair := matchPair([]attendance.Event{early}, schedStart, schedEnd)
	require.True(t, pair.HasIn)
	assert.Equal(t, early.RecordedAt, pair.In)

	// With a plausible alternative, the floor filters the 04:00 tap out.
	normal := tap(attendance.EventCheckIn, schedStart.Add(3*time.Minute))
	pair = matchPair([]attendance.Event{early, normal}, schedStart, schedEnd)
	require.True(t, pair.HasIn)
	assert.Equal(t, normal.RecordedAt, pair.In)
}

func TestClassifyDay(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 8, 4, 8, 0, 0, 0, wib)

	cases := []struct {
		name       string
		pair       attendancePair
		present    bool
		wantReason string
	}{
		{"no taps", attendancePair{}, false, payroll.AbsenceNoAttendance},
		{"only checkout", attendancePair{HasOut: true, Out: in.Add(9 * time.Hour)}, false, payroll.AbsenceMissingCheckin},
		{"only checkin", attendancePair{HasIn: true, In: in}, false, payroll.AbsenceMissingCheckout},
		{"inverted pair", attendancePair{HasIn: true, In: in, HasOut: true, Out: in.Add(-time.Hour)}, false, payroll.AbsenceMissingCheckout},
		{"valid pair", attendancePair{HasIn: true, In: in, HasOut: true, Out: in.Add(9 * time.Hour)}, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			present, reason := classifyDay(tc.pair)
			assert.Equal(t, tc.present, present)
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestManualPair_OvernightCheckoutRollsToNextDay(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 8, 4, 0, 0, 0, 0, wib)
	m := attendance.ManualAttendance{
		ID:           "man-1",
		UserID:       "user-1",
		Date:         date,
		CheckinTime:  "22:00:00",
		CheckoutTime: "06:00:00",
		Status:       "approved",
	}

	pair, err := manualPair(date, m, wib)
	require.NoError(t, err)

	require.True(t, pair.HasIn)
	require.True(t, pair.HasOut)
	assert.Equal(t, time.Date(2025, 8, 4, 22, 0, 0, 0, wib), pair.In)
	assert.Equal(t, time.Date(2025, 8, 5, 6, 0, 0, 0, wib), pair.Out)
}
