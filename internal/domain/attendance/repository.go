package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// one-record-per-(employee, date) invariant is enforced by a unique constraint
// at the storage layer; Create surfaces violations as ErrDuplicateCheckIn.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrDuplicateCheckIn when a record
	// already exists for the same employee and date.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID. Returns ErrAttendanceNotFound.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for an employee's working
	// day, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// FindInRange retrieves an employee's records with Date in the inclusive
	// [start, end] range, ordered by date.
	FindInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	// Update persists every mutable field of an existing record.
	Update(ctx context.Context, record Record) error

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// Delete removes a record. Deletion is an explicit administrative action.
	Delete(ctx context.Context, id string) error
}
