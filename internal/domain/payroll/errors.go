package payroll

import "errors"

// Payroll domain errors
var (
	ErrPayrollRecordNotFound  = errors.New("payroll record not found")
	ErrDuplicatePayrollPeriod = errors.New("a payroll record already exists for this employee and period")
	ErrPayrollAlreadyPaid     = errors.New("payroll record has already been paid")
	ErrPayrollCancelled       = errors.New("payroll record has been cancelled")
)
