package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() Rules {
	return Rules{
		ShiftStart:         "09:00",
		ShiftEnd:           "17:00",
		StandardShiftHours: 8,
		LateGraceMinutes:   0,
		Location:           time.UTC,
	}
}

func dayAt(hour, minute int) time.Time {
	return time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC)
}

func testRecord(checkIn, checkOut *time.Time) Record {
	rec := Record{
		ID:             "att-1",
		EmployeeID:     "emp-1",
		Date:           time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:         StatusPresent,
		ApprovalStatus: ApprovalPending,
	}
	if checkIn != nil {
		rec.CheckIn = &CheckEvent{Time: *checkIn, Method: MethodManual}
	}
	if checkOut != nil {
		rec.CheckOut = &CheckEvent{Time: *checkOut, Method: MethodManual}
	}
	return rec
}

func TestRecompute_LateClassification(t *testing.T) {
	// Check-in at 09:10 with shift start 09:00 and zero grace.
	in := dayAt(9, 10)
	rec := testRecord(&in, nil)

	rec.Recompute(testRules())

	assert.Equal(t, StatusLate, rec.Status)
	assert.Equal(t, 10, rec.LateMinutes)
	assert.Nil(t, rec.TotalWorkHours)
}

func TestRecompute_GracePeriodSuppressesLate(t *testing.T) {
	in := dayAt(9, 10)
	rec := testRecord(&in, nil)

	rules := testRules()
	rules.LateGraceMinutes = 15
	rec.Recompute(rules)

	assert.Equal(t, StatusPresent, rec.Status)
	assert.Equal(t, 0, rec.LateMinutes)
}

func TestRecompute_LateCountsFromShiftStartNotGraceLimit(t *testing.T) {
	in := dayAt(9, 20)
	rec := testRecord(&in, nil)

	rules := testRules()
	rules.LateGraceMinutes = 10
	rec.Recompute(rules)

	assert.Equal(t, StatusLate, rec.Status)
	assert.Equal(t, 20, rec.LateMinutes)
}

func TestRecompute_FullDayWithBreak(t *testing.T) {
	// 09:00 - 18:00 with a 30 minute lunch: 9h gross, 0.5h break,
	// overtime from gross hours with an 8h standard shift.
	in := dayAt(9, 0)
	out := dayAt(18, 0)
	rec := testRecord(&in, &out)

	breakEnd := dayAt(12, 30)
	rec.Breaks = []Break{{
		StartTime:       dayAt(12, 0),
		EndTime:         &breakEnd,
		DurationMinutes: 30,
		Type:            BreakLunch,
	}}

	rec.Recompute(testRules())

	require.NotNil(t, rec.TotalWorkHours)
	assert.InDelta(t, 9.0, *rec.TotalWorkHours, 1e-9)
	assert.InDelta(t, 0.5, rec.TotalBreakHours, 1e-9)
	assert.InDelta(t, 1.0, rec.OvertimeHours, 1e-9)

	net := rec.NetWorkHours()
	require.NotNil(t, net)
	assert.InDelta(t, 8.5, *net, 1e-9)
}

func TestRecompute_OpenBreakExcludedFromBreakHours(t *testing.T) {
	in := dayAt(9, 0)
	rec := testRecord(&in, nil)
	rec.Breaks = []Break{{StartTime: dayAt(12, 0), Type: BreakLunch}}

	rec.Recompute(testRules())

	assert.Zero(t, rec.TotalBreakHours)
}

func TestRecompute_EarlyLeave(t *testing.T) {
	in := dayAt(9, 0)
	out := dayAt(16, 0)
	rec := testRecord(&in, &out)

	rec.Recompute(testRules())

	assert.Equal(t, StatusEarlyLeave, rec.Status)
	assert.Equal(t, 60, rec.EarlyLeaveMinutes)
	assert.Zero(t, rec.OvertimeHours)
}

func TestRecompute_LateTakesPrecedenceOverEarlyLeave(t *testing.T) {
	in := dayAt(9, 30)
	out := dayAt(16, 0)
	rec := testRecord(&in, &out)

	rec.Recompute(testRules())

	// Both raw counters are set; the single status enum picks late.
	assert.Equal(t, StatusLate, rec.Status)
	assert.Equal(t, 30, rec.LateMinutes)
	assert.Equal(t, 60, rec.EarlyLeaveMinutes)
}

func TestRecompute_ExplicitFlagsWinOverTimeDerivation(t *testing.T) {
	in := dayAt(10, 0)
	rec := testRecord(&in, nil)
	rec.OnLeave = true

	rec.Recompute(testRules())
	assert.Equal(t, StatusOnLeave, rec.Status)

	rec.OnLeave = false
	rec.RemoteWork = true
	rec.Recompute(testRules())
	assert.Equal(t, StatusWorkFromHome, rec.Status)
}

func TestRecompute_NoCheckInIsAbsent(t *testing.T) {
	rec := testRecord(nil, nil)

	rec.Recompute(testRules())

	assert.Equal(t, StatusAbsent, rec.Status)
	assert.Zero(t, rec.LateMinutes)
}

func TestRecompute_HalfDayPreserved(t *testing.T) {
	in := dayAt(9, 0)
	out := dayAt(13, 0)
	rec := testRecord(&in, &out)
	rec.Status = StatusHalfDay

	rec.Recompute(testRules())

	assert.Equal(t, StatusHalfDay, rec.Status)
	require.NotNil(t, rec.TotalWorkHours)
	assert.InDelta(t, 4.0, *rec.TotalWorkHours, 1e-9)
}

func TestRecompute_Idempotent(t *testing.T) {
	in := dayAt(9, 10)
	out := dayAt(18, 15)
	rec := testRecord(&in, &out)
	breakEnd := dayAt(12, 45)
	rec.Breaks = []Break{{
		StartTime:       dayAt(12, 0),
		EndTime:         &breakEnd,
		DurationMinutes: 45,
		Type:            BreakLunch,
	}}

	rules := testRules()
	rec.Recompute(rules)
	first := rec

	rec.Recompute(rules)

	assert.Equal(t, first.Status, rec.Status)
	assert.Equal(t, *first.TotalWorkHours, *rec.TotalWorkHours)
	assert.Equal(t, first.TotalBreakHours, rec.TotalBreakHours)
	assert.Equal(t, first.OvertimeHours, rec.OvertimeHours)
	assert.Equal(t, first.LateMinutes, rec.LateMinutes)
	assert.Equal(t, first.EarlyLeaveMinutes, rec.EarlyLeaveMinutes)
}

func TestShiftWindow_OvernightShift(t *testing.T) {
	rules := testRules()
	rules.ShiftStart = "22:00"
	rules.ShiftEnd = "06:00"

	start, end := rules.ShiftWindow(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 3, start.Day())
	assert.Equal(t, 4, end.Day())
	assert.True(t, end.After(start))
}

func TestOpenBreak(t *testing.T) {
	in := dayAt(9, 0)
	rec := testRecord(&in, nil)
	assert.Nil(t, rec.OpenBreak())

	closed := dayAt(10, 30)
	rec.Breaks = []Break{
		{StartTime: dayAt(10, 0), EndTime: &closed, DurationMinutes: 30, Type: BreakRest},
		{StartTime: dayAt(12, 0), Type: BreakLunch},
	}

	open := rec.OpenBreak()
	require.NotNil(t, open)
	assert.Equal(t, BreakLunch, open.Type)
}
