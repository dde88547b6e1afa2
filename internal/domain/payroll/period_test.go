package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("WIB", 7*3600)

func TestResolvePeriod_Bounds(t *testing.T) {
	t.Parallel()

	p, err := ResolvePeriod(2025, 8, testLoc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.July, 26, 0, 0, 0, 0, testLoc), p.Start)
	assert.Equal(t, time.Date(2025, time.August, 25, 0, 0, 0, 0, testLoc), p.End)
}

func TestResolvePeriod_JanuaryRollsIntoPreviousYear(t *testing.T) {
	t.Parallel()

	p, err := ResolvePeriod(2025, 1, testLoc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.December, 26, 0, 0, 0, 0, testLoc), p.Start)
	assert.Equal(t, time.Date(2025, time.January, 25, 0, 0, 0, 0, testLoc), p.End)
}

func TestResolvePeriod_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		year  int
		month int
	}{
		{"zero month", 2025, 0},
		{"month too large", 2025, 13},
		{"zero year", 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolvePeriod(tc.year, tc.month, testLoc)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestPeriod_Dates_CoversEveryDayOnce(t *testing.T) {
	t.Parallel()

	p, err := ResolvePeriod(2025, 3, testLoc)
	require.NoError(t, err)

	dates := p.Dates()
	require.NotEmpty(t, dates)

	assert.Equal(t, p.Start, dates[0])
	assert.Equal(t, p.End, dates[len(dates)-1])

	// Feb 26 .. Mar 25 in a non-leap year is 28 days.
	assert.Len(t, dates, 28)

	for i := 1; i < len(dates); i++ {
		assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i])
	}
}

func TestPeriod_Contains(t *testing.T) {
	t.Parallel()

	p, err := ResolvePeriod(2025, 8, testLoc)
	require.NoError(t, err)

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.False(t, p.Contains(p.Start.AddDate(0, 0, -1)))
	assert.False(t, p.Contains(p.End.AddDate(0, 0, 1)))
}

func TestPenaltyDate(t *testing.T) {
	t.Parallel()

	date, err := PenaltyDate("LATE_IN:2025-08-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC), date)

	_, err = PenaltyDate("BASE")
	assert.Error(t, err)
}
