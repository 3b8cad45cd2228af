package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/payroll"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
	"github.com/daksa-hr/hrops-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	rates          payroll.Rates
	location       *time.Location
	batchWorkers   int
	now            func() time.Time
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	rates payroll.Rates,
	location *time.Location,
	batchWorkers int,
) payroll.PayrollService {
	if location == nil {
		location = time.UTC
	}
	if batchWorkers < 1 {
		batchWorkers = 4
	}
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		rates:          rates,
		location:       location,
		batchWorkers:   batchWorkers,
		now:            time.Now,
	}
}

// periodBounds returns the first and last calendar day of a period.
func (s *PayrollServiceImpl) periodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return payroll.RecordResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	if !emp.IsActive() {
		return payroll.RecordResponse{}, employee.ErrEmployeeInactive
	}

	opts := payroll.CalculateOptions{
		Bonus:          decimal.Zero,
		OtherDeduction: decimal.Zero,
	}
	if req.Bonus != nil {
		opts.Bonus = *req.Bonus
	}
	if req.OtherDeduction != nil {
		opts.OtherDeduction = *req.OtherDeduction
	}

	// One transaction covers the existence check, the attendance reads feeding
	// the derivation and the insert, so repositories see one snapshot.
	var created payroll.Record
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.payrollRepo.GetByEmployeePeriod(txCtx, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return fmt.Errorf("failed to check existing payroll: %w", err)
		}
		if existing != nil {
			return payroll.ErrDuplicatePayrollPeriod
		}

		start, end := s.periodBounds(req.PeriodMonth, req.PeriodYear)
		records, err := s.attendanceRepo.FindInRange(txCtx, emp.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to load attendance records: %w", err)
		}
		summary := attendance.Summarize(emp.ID, start, end, records)

		record := payroll.Calculate(emp, req.PeriodMonth, req.PeriodYear, summary, s.rates, opts)
		record.ID = uuid.NewString()

		// The repository maps the unique-constraint violation to
		// ErrDuplicatePayrollPeriod, closing the race between the existence
		// check above and this insert.
		created, err = s.payrollRepo.Create(txCtx, record)
		if err != nil {
			if errors.Is(err, payroll.ErrDuplicatePayrollPeriod) {
				return payroll.ErrDuplicatePayrollPeriod
			}
			return fmt.Errorf("failed to create payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	created.EmployeeName = &emp.FullName
	return mapRecordToResponse(created), nil
}

// runInTx executes fn inside one database transaction. A nil db runs fn
// directly, without transactional scope.
func (s *PayrollServiceImpl) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.RecordResponse{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) (payroll.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}

	return payroll.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.RecordResponse{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	switch record.PaymentStatus {
	case payroll.PaymentPaid:
		return payroll.RecordResponse{}, payroll.ErrPayrollAlreadyPaid
	case payroll.PaymentCancelled:
		return payroll.RecordResponse{}, payroll.ErrPayrollCancelled
	}

	now := s.now()
	record.PaymentStatus = payroll.PaymentPaid
	record.PaidAt = &now

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to mark payroll as paid: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// Approve implements payroll.PayrollService.
func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApprovePayrollRequest) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.RecordResponse{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	if record.PaymentStatus == payroll.PaymentCancelled {
		return payroll.RecordResponse{}, payroll.ErrPayrollCancelled
	}

	now := s.now()
	record.ApprovedBy = &req.ApproverID
	record.ApprovedAt = &now

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to approve payroll: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// Delete implements payroll.PayrollService.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to get payroll record: %w", err)
	}

	// Paid records are immutable history.
	if record.PaymentStatus == payroll.PaymentPaid {
		return payroll.ErrPayrollAlreadyPaid
	}

	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	return nil
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

// mapRecordToResponse converts a Record entity to RecordResponse.
func mapRecordToResponse(record payroll.Record) payroll.RecordResponse {
	var employeeName string
	if record.EmployeeName != nil {
		employeeName = *record.EmployeeName
	}

	return payroll.RecordResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		EmployeeName:   employeeName,
		PeriodMonth:    record.PeriodMonth,
		PeriodYear:     record.PeriodYear,
		BaseSalary:     record.BaseSalary,
		TotalWorkDays:  record.TotalWorkDays,
		TotalWorkHours: record.TotalWorkHours,
		OvertimeHours:  record.OvertimeHours,
		LeaveDays:      record.LeaveDays,
		AbsentDays:     record.AbsentDays,
		LateDays:       record.LateDays,
		GrossSalary:    record.GrossSalary,
		OvertimePay:    record.OvertimePay,
		Bonus:          record.Bonus,
		Allowance:      record.Allowance,
		Deductions: payroll.DeductionsResponse{
			Tax:             record.Deductions.Tax,
			SocialSecurity:  record.Deductions.SocialSecurity,
			HealthInsurance: record.Deductions.HealthInsurance,
			Other:           record.Deductions.Other,
		},
		TotalDeductions: record.TotalDeductions,
		NetSalary:       record.NetSalary,
		CalculationDetails: payroll.CalculationDetailsResponse{
			HourlyRate:          record.CalculationDetails.HourlyRate,
			OvertimeRate:        record.CalculationDetails.OvertimeRate,
			TaxRate:             record.CalculationDetails.TaxRate,
			SocialSecurityRate:  record.CalculationDetails.SocialSecurityRate,
			HealthInsuranceRate: record.CalculationDetails.HealthInsuranceRate,
		},
		PaymentStatus: string(record.PaymentStatus),
		ApprovedBy:    record.ApprovedBy,
		PaidAt:        timePtrToString(record.PaidAt),
		Notes:         record.Notes,
	}
}
