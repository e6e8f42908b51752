//go:build unit

package booking_test

import (
	"testing"
	"time"

	"medslot/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		at    time.Time
		errIs error
	}{
		{"future timestamp", now.Add(time.Hour), nil},
		{"same instant", now, booking.ErrScheduleInPast},
		{"past timestamp", now.Add(-time.Minute), booking.ErrScheduleInPast},
		{"zero timestamp", time.Time{}, booking.ErrScheduleZero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at, err := booking.NewScheduleAt(tc.at, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.at, at.Value())
		})
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 30, 45, 0, time.UTC)
	start, end := booking.DayWindow(at)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999000, time.UTC), end)

	// The window is inclusive at both ends: the day's last microsecond
	// counts, the next midnight does not.
	lastMicro := time.Date(2026, 3, 10, 23, 59, 59, 999999000, time.UTC)
	assert.False(t, lastMicro.After(end))
	assert.False(t, lastMicro.Before(start))

	nextMidnight := start.AddDate(0, 0, 1)
	assert.True(t, end.Before(nextMidnight))
	assert.True(t, nextMidnight.After(end))
}

func TestOnOrAfterDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	earlierSameDay := booking.ReconstructScheduleAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	assert.True(t, earlierSameDay.OnOrAfterDay(now), "same-day times stay confirmable")

	tomorrow := booking.ReconstructScheduleAt(now.AddDate(0, 0, 1))
	assert.True(t, tomorrow.OnOrAfterDay(now))

	yesterday := booking.ReconstructScheduleAt(now.AddDate(0, 0, -1))
	assert.False(t, yesterday.OnOrAfterDay(now))
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		occupied int
		limit    int
		admitted bool
	}{
		{"empty day", 0, 10, true},
		{"one below limit", 9, 10, true},
		{"at limit", 10, 10, false},
		{"above limit", 11, 10, false},
		{"zero limit rejects everything", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := booking.Decide(tc.occupied, tc.limit)
			assert.Equal(t, tc.admitted, d.Admitted)
			assert.Equal(t, tc.limit, d.Limit)
			assert.Equal(t, tc.occupied, d.Occupied)
		})
	}
}
