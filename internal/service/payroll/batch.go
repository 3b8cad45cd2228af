package payroll

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/payroll"
)

// batchOutcome is one worker's result slot. Exactly one of response or
// failure is set.
type batchOutcome struct {
	employeeID string
	response   *payroll.RecordResponse
	failure    error
}

// RunBatch implements payroll.PayrollService. Employees are processed by a
// bounded worker pool; one employee's failure is recorded in the report and
// never aborts the others. Only context cancellation stops the run early.
func (s *PayrollServiceImpl) RunBatch(ctx context.Context, req payroll.BatchRequest) (payroll.BatchReport, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchReport{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.BatchReport{}, fmt.Errorf("failed to load active employees: %w", err)
	}

	outcomes := make([]batchOutcome, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for i, emp := range employees {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			resp, err := s.Calculate(gctx, payroll.CalculateRequest{
				EmployeeID:  emp.ID,
				PeriodMonth: req.PeriodMonth,
				PeriodYear:  req.PeriodYear,
			})
			if err != nil {
				outcomes[i] = batchOutcome{employeeID: emp.ID, failure: err}
				return nil
			}
			outcomes[i] = batchOutcome{employeeID: emp.ID, response: &resp}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return payroll.BatchReport{}, fmt.Errorf("payroll batch interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return payroll.BatchReport{}, fmt.Errorf("payroll batch interrupted: %w", err)
	}

	report := payroll.BatchReport{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
	}
	for _, outcome := range outcomes {
		switch {
		case outcome.response != nil:
			report.CreatedCount++
			report.Created = append(report.Created, *outcome.response)
		case outcome.failure != nil:
			report.ErrorCount++
			report.Errors = append(report.Errors, payroll.BatchError{
				EmployeeID: outcome.employeeID,
				Reason:     outcome.failure.Error(),
			})
		}
	}

	return report, nil
}
