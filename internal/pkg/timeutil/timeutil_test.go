package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesBetween(t *testing.T) {
	a := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	b := a.Add(95 * time.Minute)

	mins, err := MinutesBetween(a, b)
	require.NoError(t, err)
	assert.Equal(t, 95, mins)

	mins, err = MinutesBetween(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0, mins)
}

func TestMinutesBetween_EndBeforeStart(t *testing.T) {
	a := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	_, err := MinutesBetween(a, a.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestHoursBetween(t *testing.T) {
	a := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	b := a.Add(8*time.Hour + 30*time.Minute)

	hours, err := HoursBetween(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 8.5, hours, 1e-9)

	_, err = HoursBetween(b, a)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 01:30 UTC on June 4 is already June 4 08:30 in Jakarta.
	ts := time.Date(2024, 6, 4, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, loc), DateOnly(ts, loc))
}

func TestCalendarDate_KeepsDateAcrossZones(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// A date string parsed without a zone yields a UTC midnight. West of
	// UTC that instant is still the previous evening, so converting first
	// (DateOnly) shifts the day while CalendarDate keeps it.
	parsed, err := time.Parse("2006-01-02", "2026-03-31")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, newYork), CalendarDate(parsed, newYork))
	assert.Equal(t, time.Date(2026, 3, 30, 0, 0, 0, 0, newYork), DateOnly(parsed, newYork))
}

func TestCalendarDate_Idempotent(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	d := time.Date(2026, 3, 31, 0, 0, 0, 0, jakarta)
	assert.Equal(t, d, CalendarDate(d, jakarta))
}
