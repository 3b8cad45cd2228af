package attendance

import (
	"time"
)

type CheckMethod string

const (
	MethodManual          CheckMethod = "manual"
	MethodQRCode          CheckMethod = "qr_code"
	MethodFingerprint     CheckMethod = "fingerprint"
	MethodFaceRecognition CheckMethod = "face_recognition"
	MethodMobileApp       CheckMethod = "mobile_app"
)

func ValidCheckMethods() []string {
	return []string{
		string(MethodManual),
		string(MethodQRCode),
		string(MethodFingerprint),
		string(MethodFaceRecognition),
		string(MethodMobileApp),
	}
}

type BreakType string

const (
	BreakLunch  BreakType = "lunch"
	BreakRest   BreakType = "rest"
	BreakPrayer BreakType = "prayer"
	BreakOther  BreakType = "other"
)

func ValidBreakTypes() []string {
	return []string{
		string(BreakLunch),
		string(BreakRest),
		string(BreakPrayer),
		string(BreakOther),
	}
}

type Status string

const (
	StatusPresent      Status = "present"
	StatusAbsent       Status = "absent"
	StatusLate         Status = "late"
	StatusEarlyLeave   Status = "early_leave"
	StatusHalfDay      Status = "half_day"
	StatusWorkFromHome Status = "work_from_home"
	StatusOnLeave      Status = "on_leave"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// CheckEvent captures one side of the check-in/check-out pair.
type CheckEvent struct {
	Time     time.Time   `json:"time"`
	Location *string     `json:"location,omitempty"`
	Method   CheckMethod `json:"method"`
	Notes    *string     `json:"notes,omitempty"`
}

// Break is one timed pause within a working day. An open break has no EndTime.
type Break struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Type            BreakType  `json:"type"`
}

func (b Break) IsOpen() bool {
	return b.EndTime == nil
}

// Record is one employee's attendance for one calendar day. At most one record
// exists per (employee, date); the repository enforces this with a unique
// constraint.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time // midnight of the working day, local time
	CheckIn    *CheckEvent
	CheckOut   *CheckEvent
	Breaks     []Break

	// Explicit flags, set by leave/schedule administration. They take
	// precedence over time-derived status classification.
	OnLeave    bool
	RemoteWork bool

	Status Status

	// Derived fields, recomputed by Recompute on every time-field mutation.
	TotalWorkHours    *float64
	TotalBreakHours   float64
	OvertimeHours     float64
	LateMinutes       int
	EarlyLeaveMinutes int

	// Approval sits on an axis orthogonal to the working-day state machine.
	ApprovalStatus  ApprovalStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// OpenBreak returns a pointer to the record's open break, or nil.
func (r *Record) OpenBreak() *Break {
	for i := range r.Breaks {
		if r.Breaks[i].IsOpen() {
			return &r.Breaks[i]
		}
	}
	return nil
}

func (r *Record) HasCheckedIn() bool {
	return r.CheckIn != nil
}

func (r *Record) HasCheckedOut() bool {
	return r.CheckOut != nil
}
