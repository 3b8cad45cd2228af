package employee

import "context"

// EmployeeRepository is the read-only directory surface the attendance and
// payroll services consume. Employee records are owned and mutated elsewhere.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}

type EmployeeFilter struct {
	Department *string
	Status     *EmploymentStatus
	Search     *string
	Page       int
	Limit      int
}
