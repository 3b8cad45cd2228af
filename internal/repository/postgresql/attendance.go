package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.check_in_time, a.check_in_location, a.check_in_method, a.check_in_notes,
	a.check_out_time, a.check_out_location, a.check_out_method, a.check_out_notes,
	a.breaks, a.on_leave, a.remote_work, a.status,
	a.total_work_hours, a.total_break_hours, a.overtime_hours,
	a.late_minutes, a.early_leave_minutes,
	a.approval_status, a.approved_by, a.approved_at, a.rejection_reason,
	a.created_at, a.updated_at`

// attendanceRow is the flat scan target for a record plus its joined
// employee name.
type attendanceRow struct {
	record attendance.Record

	checkInTime      *time.Time
	checkInLocation  *string
	checkInMethod    *string
	checkInNotes     *string
	checkOutTime     *time.Time
	checkOutLocation *string
	checkOutMethod   *string
	checkOutNotes    *string
	breaksJSON       []byte
}

func (r *attendanceRow) scanTargets(withEmployeeName bool) []any {
	targets := []any{
		&r.record.ID, &r.record.EmployeeID, &r.record.Date,
		&r.checkInTime, &r.checkInLocation, &r.checkInMethod, &r.checkInNotes,
		&r.checkOutTime, &r.checkOutLocation, &r.checkOutMethod, &r.checkOutNotes,
		&r.breaksJSON, &r.record.OnLeave, &r.record.RemoteWork, &r.record.Status,
		&r.record.TotalWorkHours, &r.record.TotalBreakHours, &r.record.OvertimeHours,
		&r.record.LateMinutes, &r.record.EarlyLeaveMinutes,
		&r.record.ApprovalStatus, &r.record.ApprovedBy, &r.record.ApprovedAt, &r.record.RejectionReason,
		&r.record.CreatedAt, &r.record.UpdatedAt,
	}
	if withEmployeeName {
		targets = append(targets, &r.record.EmployeeName)
	}
	return targets
}

func (r *attendanceRow) build() (attendance.Record, error) {
	record := r.record

	if r.checkInTime != nil {
		event := attendance.CheckEvent{
			Time:     *r.checkInTime,
			Location: r.checkInLocation,
			Notes:    r.checkInNotes,
		}
		if r.checkInMethod != nil {
			event.Method = attendance.CheckMethod(*r.checkInMethod)
		}
		record.CheckIn = &event
	}
	if r.checkOutTime != nil {
		event := attendance.CheckEvent{
			Time:     *r.checkOutTime,
			Location: r.checkOutLocation,
			Notes:    r.checkOutNotes,
		}
		if r.checkOutMethod != nil {
			event.Method = attendance.CheckMethod(*r.checkOutMethod)
		}
		record.CheckOut = &event
	}

	if len(r.breaksJSON) > 0 {
		if err := json.Unmarshal(r.breaksJSON, &record.Breaks); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}

	return record, nil
}

// checkEventFields splits an optional check event into its column values.
func checkEventFields(event *attendance.CheckEvent) (t *time.Time, location, method, notes *string) {
	if event == nil {
		return nil, nil, nil, nil
	}
	eventTime := event.Time
	eventMethod := string(event.Method)
	return &eventTime, event.Location, &eventMethod, event.Notes
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := json.Marshal(record.Breaks)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to encode breaks: %w", err)
	}

	inTime, inLocation, inMethod, inNotes := checkEventFields(record.CheckIn)
	outTime, outLocation, outMethod, outNotes := checkEventFields(record.CheckOut)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date,
			check_in_time, check_in_location, check_in_method, check_in_notes,
			check_out_time, check_out_location, check_out_method, check_out_notes,
			breaks, on_leave, remote_work, status,
			total_work_hours, total_break_hours, overtime_hours,
			late_minutes, early_leave_minutes,
			approval_status, approved_by, approved_at, rejection_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date,
		inTime, inLocation, inMethod, inNotes,
		outTime, outLocation, outMethod, outNotes,
		breaksJSON, record.OnLeave, record.RemoteWork, record.Status,
		record.TotalWorkHours, record.TotalBreakHours, record.OvertimeHours,
		record.LateMinutes, record.EarlyLeaveMinutes,
		record.ApprovalStatus, record.ApprovedBy, record.ApprovedAt, record.RejectionReason,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var row attendanceRow
	err := q.QueryRow(ctx, query, id).Scan(row.scanTargets(true)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return row.build()
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	var row attendanceRow
	err := q.QueryRow(ctx, query, employeeID, date).Scan(row.scanTargets(false)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	record, err := row.build()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var row attendanceRow
		if err := rows.Scan(row.scanTargets(false)...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		record, err := row.build()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := json.Marshal(record.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}

	inTime, inLocation, inMethod, inNotes := checkEventFields(record.CheckIn)
	outTime, outLocation, outMethod, outNotes := checkEventFields(record.CheckOut)

	query := `
		UPDATE attendance_records SET
			check_in_time = $2, check_in_location = $3, check_in_method = $4, check_in_notes = $5,
			check_out_time = $6, check_out_location = $7, check_out_method = $8, check_out_notes = $9,
			breaks = $10, on_leave = $11, remote_work = $12, status = $13,
			total_work_hours = $14, total_break_hours = $15, overtime_hours = $16,
			late_minutes = $17, early_leave_minutes = $18,
			approval_status = $19, approved_by = $20, approved_at = $21, rejection_reason = $22,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		inTime, inLocation, inMethod, inNotes,
		outTime, outLocation, outMethod, outNotes,
		breaksJSON, record.OnLeave, record.RemoteWork, record.Status,
		record.TotalWorkHours, record.TotalBreakHours, record.OvertimeHours,
		record.LateMinutes, record.EarlyLeaveMinutes,
		record.ApprovalStatus, record.ApprovedBy, record.ApprovedAt, record.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
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
		SELECT `+attendanceColumns+`, e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var row attendanceRow
		if err := rows.Scan(row.scanTargets(true)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		record, err := row.build()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
