package attendance

import "time"

// MonthlySummary is a value object aggregating one employee's records over a
// date range. It is computed fresh on every call and never persisted.
type MonthlySummary struct {
	EmployeeID         string
	StartDate          time.Time
	EndDate            time.Time
	TotalDays          int
	PresentDays        int
	AbsentDays         int
	LateDays           int
	LeaveDays          int
	TotalWorkHours     float64
	TotalOvertimeHours float64
	TotalLateMinutes   int
}

// Summarize folds the records matching employeeID and the inclusive
// [start, end] date range into a MonthlySummary. Only existing records are
// counted: a day with no record contributes nothing, and absence is never
// inferred from a missing record. Zero matching records is not an error.
func Summarize(employeeID string, start, end time.Time, records []Record) MonthlySummary {
	summary := MonthlySummary{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	}

	for _, rec := range records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}

		summary.TotalDays++

		// Each record lands in exactly one day counter, following the same
		// precedence as status classification. Remote-work, early-leave and
		// half-day records all count as worked days.
		switch rec.Status {
		case StatusOnLeave:
			summary.LeaveDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusLate:
			summary.LateDays++
		default:
			summary.PresentDays++
		}

		// Hour totals are plain sums regardless of status.
		if rec.TotalWorkHours != nil {
			summary.TotalWorkHours += *rec.TotalWorkHours
		}
		summary.TotalOvertimeHours += rec.OvertimeHours
		summary.TotalLateMinutes += rec.LateMinutes
	}

	return summary
}
