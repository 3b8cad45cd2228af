package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations. All
// operations validate preconditions before mutating and leave the record
// unchanged on failure.
type AttendanceService interface {
	// CheckIn opens today's attendance record for an employee.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes today's record and recomputes derived totals. An open
	// break is auto-closed at the check-out time.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// StartBreak opens a break on today's record.
	StartBreak(ctx context.Context, req StartBreakRequest) (RecordResponse, error)

	// EndBreak closes the open break on today's record.
	EndBreak(ctx context.Context, req EndBreakRequest) (RecordResponse, error)

	// Get retrieves a single record by ID.
	Get(ctx context.Context, id string) (RecordResponse, error)

	// List retrieves records with filters (admin/manager).
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// Summarize aggregates one employee's records over an inclusive date range.
	Summarize(ctx context.Context, employeeID string, start, end time.Time) (SummaryResponse, error)

	// Update fixes wrong attendance data (admin/manager) and recomputes
	// derived fields.
	Update(ctx context.Context, req UpdateRequest) (RecordResponse, error)

	// Approve marks a record approved. Approval never alters derived totals.
	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	// Reject marks a record rejected with a reason.
	Reject(ctx context.Context, req RejectRequest) (RecordResponse, error)

	// Delete removes a record (explicit administrative action).
	Delete(ctx context.Context, id string) error
}
