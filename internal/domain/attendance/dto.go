package attendance

import (
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Location   *string `json:"location,omitempty"`
	Method     string  `json:"method,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	RemoteWork bool    `json:"remote_work,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Method == "" {
		r.Method = string(MethodManual)
	}
	if !validator.IsInSlice(r.Method, ValidCheckMethods()) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of manual, qr_code, fingerprint, face_recognition, mobile_app",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Location   *string `json:"location,omitempty"`
	Method     string  `json:"method,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Method == "" {
		r.Method = string(MethodManual)
	}
	if !validator.IsInSlice(r.Method, ValidCheckMethods()) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of manual, qr_code, fingerprint, face_recognition, mobile_app",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Type == "" {
		r.Type = string(BreakRest)
	}
	if !validator.IsInSlice(r.Type, ValidBreakTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of lunch, rest, prayer, other",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndBreakRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *EndBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequest lets managers fix wrong attendance data. Derived fields are
// recomputed after the update, never set directly.
type UpdateRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	OnLeave      *bool   `json:"on_leave,omitempty"`
	RemoteWork   *bool   `json:"remote_work,omitempty"`
	HalfDay      *bool   `json:"half_day,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
}

type RejectRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
	Reason     string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// FILTERS
// ========================================

type Filter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string // "2006-01-02"
	EndDate    *string
	Page       int
	Limit      int
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Type            string  `json:"type"`
}

type RecordResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Date              string          `json:"date"`
	CheckInTime       *string         `json:"check_in_time"`
	CheckInLocation   *string         `json:"check_in_location,omitempty"`
	CheckInMethod     *string         `json:"check_in_method,omitempty"`
	CheckOutTime      *string         `json:"check_out_time"`
	CheckOutLocation  *string         `json:"check_out_location,omitempty"`
	CheckOutMethod    *string         `json:"check_out_method,omitempty"`
	Breaks            []BreakResponse `json:"breaks"`
	Status            string          `json:"status"`
	TotalWorkHours    *float64        `json:"total_work_hours"`
	TotalBreakHours   float64         `json:"total_break_hours"`
	NetWorkHours      *float64        `json:"net_work_hours"`
	OvertimeHours     float64         `json:"overtime_hours"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
	ApprovalStatus    string          `json:"approval_status"`
	ApprovedBy        *string         `json:"approved_by,omitempty"`
	RejectionReason   *string         `json:"rejection_reason,omitempty"`
	CreatedAt         string          `json:"created_at,omitempty"`
	UpdatedAt         string          `json:"updated_at,omitempty"`
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Records    []RecordResponse `json:"records"`
}

type SummaryResponse struct {
	EmployeeID         string  `json:"employee_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalDays          int     `json:"total_days"`
	PresentDays        int     `json:"present_days"`
	AbsentDays         int     `json:"absent_days"`
	LateDays           int     `json:"late_days"`
	LeaveDays          int     `json:"leave_days"`
	TotalWorkHours     float64 `json:"total_work_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	TotalLateMinutes   int     `json:"total_late_minutes"`
}
