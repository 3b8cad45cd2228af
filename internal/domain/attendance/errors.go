package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out errors
	ErrDuplicateCheckIn      = errors.New("an attendance record already exists for this employee and date")
	ErrNoActiveCheckIn       = errors.New("no check-in recorded for this employee today")
	ErrAlreadyCheckedOut     = errors.New("this attendance record is already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be before check-in time")

	// Break errors
	ErrAlreadyOnBreak = errors.New("a break is already open on this record")
	ErrNoActiveBreak  = errors.New("no open break on this record")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyProcessed   = errors.New("attendance has already been approved or rejected")
)
