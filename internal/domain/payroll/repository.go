package payroll

import "context"

// PayrollRepository defines data access for payroll records. The
// one-record-per-(employee, month, year) invariant is enforced by a unique
// constraint at the storage layer; Create surfaces violations as
// ErrDuplicatePayrollPeriod.
type PayrollRepository interface {
	// Create inserts a new record. Returns ErrDuplicatePayrollPeriod when a
	// record already exists for the same employee and period.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID. Returns ErrPayrollRecordNotFound.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeePeriod retrieves the record for one employee-period, or
	// nil when none exists.
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*Record, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// Update persists status and approval changes of an existing record.
	Update(ctx context.Context, record Record) error

	// Delete removes a record. Deletion is an explicit administrative action.
	Delete(ctx context.Context, id string) error
}
