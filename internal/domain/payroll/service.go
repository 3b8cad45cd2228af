package payroll

import "context"

// PayrollService defines business logic for payroll operations.
type PayrollService interface {
	// Calculate derives and persists one employee's payroll for a period.
	Calculate(ctx context.Context, req CalculateRequest) (RecordResponse, error)

	// RunBatch applies Calculate across all active employees for a period,
	// collecting per-employee successes and failures independently.
	RunBatch(ctx context.Context, req BatchRequest) (BatchReport, error)

	// Get retrieves a single record by ID.
	Get(ctx context.Context, id string) (RecordResponse, error)

	// List retrieves records with filters.
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// MarkPaid transitions a record to paid.
	MarkPaid(ctx context.Context, req MarkPaidRequest) (RecordResponse, error)

	// Approve records a manager's approval.
	Approve(ctx context.Context, req ApprovePayrollRequest) (RecordResponse, error)

	// Delete removes a record (explicit administrative action).
	Delete(ctx context.Context, id string) error
}
