package booking

import (
	"errors"
	"time"
)

var (
	ErrScheduleInPast = errors.New("scheduled time must be in the future")
	ErrScheduleZero   = errors.New("scheduled time is required")
)

// ScheduleAt is a validated appointment timestamp.
type ScheduleAt struct {
	value time.Time
}

// NewScheduleAt requires a strictly-future timestamp. Used on the
// creation path; status transitions re-evaluate with the looser
// same-day rule instead.
func NewScheduleAt(t, now time.Time) (ScheduleAt, error) {
	if t.IsZero() {
		return ScheduleAt{}, ErrScheduleZero
	}
	if !t.After(now) {
		return ScheduleAt{}, ErrScheduleInPast
	}
	return ScheduleAt{value: t}, nil
}

func ReconstructScheduleAt(t time.Time) ScheduleAt {
	return ScheduleAt{value: t}
}

func (s ScheduleAt) Value() time.Time {
	return s.value
}

// OnOrAfterDay reports whether the schedule falls on now's calendar
// day or later. Confirm transitions permit same-day re-evaluation.
func (s ScheduleAt) OnOrAfterDay(now time.Time) bool {
	dayStart, _ := DayWindow(now)
	return !s.value.Before(dayStart)
}

// DayWindow returns the closed calendar-day interval containing t in
// t's location: [00:00:00.000000, 23:59:59.999999]. Occupancy queries
// use BETWEEN on this window, so the end is inclusive at microsecond
// precision (the resolution of timestamptz).
func DayWindow(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1).Add(-time.Microsecond)
	return start, end
}
