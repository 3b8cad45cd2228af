package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/payroll"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.period_month, p.period_year,
	p.base_salary, p.total_work_days, p.total_work_hours, p.overtime_hours,
	p.leave_days, p.absent_days, p.late_days,
	p.gross_salary, p.overtime_pay, p.bonus, p.allowance,
	p.deductions, p.total_deductions, p.net_salary, p.calculation_details,
	p.payment_status, p.approved_by, p.approved_at, p.paid_at, p.notes,
	p.created_at, p.updated_at`

type payrollRow struct {
	record payroll.Record

	deductionsJSON  []byte
	calculationJSON []byte
}

func (r *payrollRow) scanTargets(withEmployeeName bool) []any {
	targets := []any{
		&r.record.ID, &r.record.EmployeeID, &r.record.PeriodMonth, &r.record.PeriodYear,
		&r.record.BaseSalary, &r.record.TotalWorkDays, &r.record.TotalWorkHours, &r.record.OvertimeHours,
		&r.record.LeaveDays, &r.record.AbsentDays, &r.record.LateDays,
		&r.record.GrossSalary, &r.record.OvertimePay, &r.record.Bonus, &r.record.Allowance,
		&r.deductionsJSON, &r.record.TotalDeductions, &r.record.NetSalary, &r.calculationJSON,
		&r.record.PaymentStatus, &r.record.ApprovedBy, &r.record.ApprovedAt, &r.record.PaidAt, &r.record.Notes,
		&r.record.CreatedAt, &r.record.UpdatedAt,
	}
	if withEmployeeName {
		targets = append(targets, &r.record.EmployeeName)
	}
	return targets
}

func (r *payrollRow) build() (payroll.Record, error) {
	record := r.record

	if len(r.deductionsJSON) > 0 {
		if err := json.Unmarshal(r.deductionsJSON, &record.Deductions); err != nil {
			return payroll.Record{}, fmt.Errorf("failed to decode deductions: %w", err)
		}
	}
	if len(r.calculationJSON) > 0 {
		if err := json.Unmarshal(r.calculationJSON, &record.CalculationDetails); err != nil {
			return payroll.Record{}, fmt.Errorf("failed to decode calculation details: %w", err)
		}
	}

	return record, nil
}

// Create implements payroll.PayrollRepository.
func (p *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to encode deductions: %w", err)
	}
	calculationJSON, err := json.Marshal(record.CalculationDetails)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to encode calculation details: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year,
			base_salary, total_work_days, total_work_hours, overtime_hours,
			leave_days, absent_days, late_days,
			gross_salary, overtime_pay, bonus, allowance,
			deductions, total_deductions, net_salary, calculation_details,
			payment_status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BaseSalary, record.TotalWorkDays, record.TotalWorkHours, record.OvertimeHours,
		record.LeaveDays, record.AbsentDays, record.LateDays,
		record.GrossSalary, record.OvertimePay, record.Bonus, record.Allowance,
		deductionsJSON, record.TotalDeductions, record.NetSalary, calculationJSON,
		record.PaymentStatus, record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Record{}, payroll.ErrDuplicatePayrollPeriod
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `, e.full_name AS employee_name
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var row payrollRow
	err := q.QueryRow(ctx, query, id).Scan(row.scanTargets(true)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return row.build()
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (p *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records p
		WHERE p.employee_id = $1
		  AND p.period_month = $2
		  AND p.period_year = $3
		LIMIT 1
	`

	var row payrollRow
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(row.scanTargets(false)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	record, err := row.build()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, p.db)

	baseWhere := "1=1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.payment_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_records p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+payrollColumns+`, e.full_name AS employee_name
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var row payrollRow
		if err := rows.Scan(row.scanTargets(true)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		record, err := row.build()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// Update implements payroll.PayrollRepository.
func (p *payrollRepository) Update(ctx context.Context, record payroll.Record) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records SET
			payment_status = $2, approved_by = $3, approved_at = $4,
			paid_at = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.PaymentStatus, record.ApprovedBy, record.ApprovedAt,
		record.PaidAt, record.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

// Delete implements payroll.PayrollRepository.
func (p *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}
