package attendance

import (
	"time"

	"github.com/daksa-hr/hrops-backend-go/internal/pkg/timeutil"
)

// Rules carries the configured shift parameters the engine classifies against.
type Rules struct {
	ShiftStart         string // "HH:MM"
	ShiftEnd           string // "HH:MM"
	StandardShiftHours float64
	LateGraceMinutes   int
	Location           *time.Location
}

// ShiftWindow anchors the configured shift times onto the record's working day.
func (ru Rules) ShiftWindow(date time.Time) (start, end time.Time) {
	loc := ru.Location
	if loc == nil {
		loc = time.UTC
	}
	start = atClock(date, ru.ShiftStart, loc)
	end = atClock(date, ru.ShiftEnd, loc)
	if !end.After(start) {
		// Overnight shift: the scheduled end falls on the next day.
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

func atClock(date time.Time, clock string, loc *time.Location) time.Time {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		parsed = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
}

// Recompute re-derives every computed field from the record's time fields.
// It is invoked by every mutating operation and is idempotent: calling it
// twice without an intervening mutation yields identical derived fields.
func (r *Record) Recompute(rules Rules) {
	totalBreakMinutes := 0
	for _, b := range r.Breaks {
		if !b.IsOpen() {
			totalBreakMinutes += b.DurationMinutes
		}
	}
	r.TotalBreakHours = float64(totalBreakMinutes) / 60.0

	r.TotalWorkHours = nil
	if r.CheckIn != nil && r.CheckOut != nil {
		if hours, err := timeutil.HoursBetween(r.CheckIn.Time, r.CheckOut.Time); err == nil {
			r.TotalWorkHours = &hours
		}
	}

	shiftStart, shiftEnd := rules.ShiftWindow(r.Date)

	r.LateMinutes = 0
	if r.CheckIn != nil {
		graceLimit := shiftStart.Add(time.Duration(rules.LateGraceMinutes) * time.Minute)
		if r.CheckIn.Time.After(graceLimit) {
			// Lateness counts from the scheduled start, not the grace limit.
			if mins, err := timeutil.MinutesBetween(shiftStart, r.CheckIn.Time); err == nil {
				r.LateMinutes = mins
			}
		}
	}

	r.EarlyLeaveMinutes = 0
	if r.CheckOut != nil && r.CheckOut.Time.Before(shiftEnd) {
		if mins, err := timeutil.MinutesBetween(r.CheckOut.Time, shiftEnd); err == nil {
			r.EarlyLeaveMinutes = mins
		}
	}

	// Overtime accrues on gross worked hours; break time is not subtracted
	// here. NetWorkHours reports the break-adjusted figure.
	r.OvertimeHours = 0
	if r.TotalWorkHours != nil && *r.TotalWorkHours > rules.StandardShiftHours {
		r.OvertimeHours = *r.TotalWorkHours - rules.StandardShiftHours
	}

	r.ClassifyStatus(rules)
}

// ClassifyStatus assigns the single status enum. Precedence: explicit leave
// and remote-work flags, then absence, then lateness, then early leave.
// half_day is only ever assigned administratively and is preserved.
func (r *Record) ClassifyStatus(rules Rules) {
	switch {
	case r.OnLeave:
		r.Status = StatusOnLeave
	case r.RemoteWork:
		r.Status = StatusWorkFromHome
	case r.CheckIn == nil:
		r.Status = StatusAbsent
	case r.Status == StatusHalfDay:
		// keep
	case r.LateMinutes > 0:
		r.Status = StatusLate
	case r.EarlyLeaveMinutes > 0:
		r.Status = StatusEarlyLeave
	default:
		r.Status = StatusPresent
	}
}

// NetWorkHours returns worked hours with closed break time subtracted, or nil
// before checkout. Payroll currently consumes gross hours; this figure exists
// for reporting.
func (r *Record) NetWorkHours() *float64 {
	if r.TotalWorkHours == nil {
		return nil
	}
	net := *r.TotalWorkHours - r.TotalBreakHours
	if net < 0 {
		net = 0
	}
	return &net
}
