package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/daksa-hr/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL DTOs
// ========================================

type CalculateRequest struct {
	EmployeeID     string           `json:"employee_id"`
	PeriodMonth    int              `json:"period_month"`
	PeriodYear     int              `json:"period_year"`
	Bonus          *decimal.Decimal `json:"bonus,omitempty"`
	OtherDeduction *decimal.Decimal `json:"other_deduction,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidMonth(r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.PeriodYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year must be between 2000 and 2100",
		})
	}

	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus cannot be negative",
		})
	}

	if r.OtherDeduction != nil && r.OtherDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "other_deduction",
			Message: "other_deduction cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *BatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.PeriodYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkPaidRequest struct {
	ID     string `json:"-"`
	PaidBy string `json:"-"`
}

type ApprovePayrollRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
}

// ========================================
// FILTERS
// ========================================

type Filter struct {
	EmployeeID  *string
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	Page        int
	Limit       int
}

// ========================================
// RESPONSES
// ========================================

type DeductionsResponse struct {
	Tax             decimal.Decimal `json:"tax"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	HealthInsurance decimal.Decimal `json:"health_insurance"`
	Other           decimal.Decimal `json:"other"`
}

type CalculationDetailsResponse struct {
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	SocialSecurityRate  decimal.Decimal `json:"social_security_rate"`
	HealthInsuranceRate decimal.Decimal `json:"health_insurance_rate"`
}

type RecordResponse struct {
	ID                 string                     `json:"id"`
	EmployeeID         string                     `json:"employee_id"`
	EmployeeName       string                     `json:"employee_name,omitempty"`
	PeriodMonth        int                        `json:"period_month"`
	PeriodYear         int                        `json:"period_year"`
	BaseSalary         decimal.Decimal            `json:"base_salary"`
	TotalWorkDays      int                        `json:"total_work_days"`
	TotalWorkHours     float64                    `json:"total_work_hours"`
	OvertimeHours      float64                    `json:"overtime_hours"`
	LeaveDays          int                        `json:"leave_days"`
	AbsentDays         int                        `json:"absent_days"`
	LateDays           int                        `json:"late_days"`
	GrossSalary        decimal.Decimal            `json:"gross_salary"`
	OvertimePay        decimal.Decimal            `json:"overtime_pay"`
	Bonus              decimal.Decimal            `json:"bonus"`
	Allowance          decimal.Decimal            `json:"allowance"`
	Deductions         DeductionsResponse         `json:"deductions"`
	TotalDeductions    decimal.Decimal            `json:"total_deductions"`
	NetSalary          decimal.Decimal            `json:"net_salary"`
	CalculationDetails CalculationDetailsResponse `json:"calculation_details"`
	PaymentStatus      string                     `json:"payment_status"`
	ApprovedBy         *string                    `json:"approved_by,omitempty"`
	PaidAt             *string                    `json:"paid_at,omitempty"`
	Notes              *string                    `json:"notes,omitempty"`
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// BatchError is one employee's failure inside a batch run.
type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchReport aggregates per-employee outcomes of one batch run. One
// employee's failure never aborts another's success.
type BatchReport struct {
	PeriodMonth  int              `json:"period_month"`
	PeriodYear   int              `json:"period_year"`
	CreatedCount int              `json:"created_count"`
	ErrorCount   int              `json:"error_count"`
	Created      []RecordResponse `json:"created"`
	Errors       []BatchError     `json:"errors"`
}
