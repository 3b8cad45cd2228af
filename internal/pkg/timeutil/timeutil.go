package timeutil

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when the end of an interval precedes its start.
var ErrInvalidInterval = errors.New("interval end is before its start")

// MinutesBetween returns the number of whole minutes in the interval [a, b].
func MinutesBetween(a, b time.Time) (int, error) {
	if b.Before(a) {
		return 0, ErrInvalidInterval
	}
	return int(b.Sub(a).Minutes()), nil
}

// HoursBetween returns the fractional hours in the interval [a, b].
// Rounding is the caller's responsibility at display time.
func HoursBetween(a, b time.Time) (float64, error) {
	if b.Before(a) {
		return 0, ErrInvalidInterval
	}
	return b.Sub(a).Hours(), nil
}

// DateOnly truncates t to midnight of its calendar day in loc. Used as the
// one-record-per-employee-per-day key.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// CalendarDate returns midnight in loc of the calendar date t carries in its
// own zone. Unlike DateOnly it never converts the instant first, so a date
// parsed as a UTC midnight names the same calendar day in any loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
