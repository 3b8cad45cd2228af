package response

import (
	"errors"
	"net/http"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/payroll"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time cannot be before check-in time", nil)
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoActiveBreak):
		BadRequest(w, "No break in progress", nil)
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance record already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrDuplicatePayrollPeriod):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll record has already been paid")
	case errors.Is(err, payroll.ErrPayrollCancelled):
		Conflict(w, "Payroll record has been cancelled")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
