package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/database"
	"github.com/daksa-hr/hrops-backend-go/internal/pkg/timeutil"
	"github.com/daksa-hr/hrops-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	rules          attendance.Rules
	now            func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	rules attendance.Rules,
) attendance.AttendanceService {
	if rules.Location == nil {
		rules.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		rules:          rules,
		now:            time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	now := s.now().In(s.rules.Location)
	date := timeutil.DateOnly(now, s.rules.Location)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrDuplicateCheckIn
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       date,
		CheckIn: &attendance.CheckEvent{
			Time:     now,
			Location: req.Location,
			Method:   attendance.CheckMethod(req.Method),
			Notes:    req.Notes,
		},
		RemoteWork:     req.RemoteWork,
		Status:         attendance.StatusPresent,
		ApprovalStatus: attendance.ApprovalPending,
	}
	record.Recompute(s.rules)

	// The repository maps a unique-constraint violation to ErrDuplicateCheckIn,
	// closing the race between the existence check above and this insert.
	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateCheckIn) {
			return attendance.RecordResponse{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	created.EmployeeName = &emp.FullName
	return mapRecordToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := timeutil.DateOnly(now, s.rules.Location)

	found, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if found == nil || !found.HasCheckedIn() {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}
	if found.HasCheckedOut() {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if now.Before(found.CheckIn.Time) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	record := *found

	// An open break does not block checkout; it is closed at the checkout time.
	if open := record.OpenBreak(); open != nil {
		endTime := now
		open.EndTime = &endTime
		if mins, err := timeutil.MinutesBetween(open.StartTime, endTime); err == nil {
			open.DurationMinutes = mins
		}
	}

	record.CheckOut = &attendance.CheckEvent{
		Time:     now,
		Location: req.Location,
		Method:   attendance.CheckMethod(req.Method),
		Notes:    req.Notes,
	}
	record.Recompute(s.rules)

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := timeutil.DateOnly(now, s.rules.Location)

	found, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if found == nil || !found.HasCheckedIn() {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}
	if found.HasCheckedOut() {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if found.OpenBreak() != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyOnBreak
	}

	record := *found
	record.Breaks = append(record.Breaks, attendance.Break{
		StartTime: now,
		Type:      attendance.BreakType(req.Type),
	})
	record.Recompute(s.rules)

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.rules.Location)
	date := timeutil.DateOnly(now, s.rules.Location)

	found, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if found == nil || !found.HasCheckedIn() {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}

	record := *found
	open := record.OpenBreak()
	if open == nil {
		return attendance.RecordResponse{}, attendance.ErrNoActiveBreak
	}

	endTime := now
	mins, err := timeutil.MinutesBetween(open.StartTime, endTime)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid break interval: %w", err)
	}
	open.EndTime = &endTime
	open.DurationMinutes = mins
	record.Recompute(s.rules)

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    responses,
	}, nil
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID string, start, end time.Time) (attendance.SummaryResponse, error) {
	// The range bounds are calendar dates. Callers parse them without a zone,
	// so the carried date is anchored in the shift location rather than
	// converted to it; converting would shift the day west of UTC.
	start = timeutil.CalendarDate(start, s.rules.Location)
	end = timeutil.CalendarDate(end, s.rules.Location)

	records, err := s.attendanceRepo.FindInRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	summary := attendance.Summarize(employeeID, start, end, records)

	return attendance.SummaryResponse{
		EmployeeID:         summary.EmployeeID,
		StartDate:          summary.StartDate.Format("2006-01-02"),
		EndDate:            summary.EndDate.Format("2006-01-02"),
		TotalDays:          summary.TotalDays,
		PresentDays:        summary.PresentDays,
		AbsentDays:         summary.AbsentDays,
		LateDays:           summary.LateDays,
		LeaveDays:          summary.LeaveDays,
		TotalWorkHours:     summary.TotalWorkHours,
		TotalOvertimeHours: summary.TotalOvertimeHours,
		TotalLateMinutes:   summary.TotalLateMinutes,
	}, nil
}

// Update implements attendance.AttendanceService.
// This allows managers to fix attendance data like wrong clock times; derived
// fields are always recomputed, never set directly.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	// The read and the write share one transaction so a concurrent correction
	// cannot slip in between them.
	var record attendance.Record
	err := s.runInTx(ctx, func(txCtx context.Context) error {
		found, err := s.attendanceRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		record = found

		if req.CheckInTime != nil {
			parsed, err := time.Parse(time.RFC3339, *req.CheckInTime)
			if err != nil {
				return fmt.Errorf("invalid check_in_time: %w", err)
			}
			if record.CheckIn == nil {
				record.CheckIn = &attendance.CheckEvent{Method: attendance.MethodManual}
			}
			record.CheckIn.Time = parsed.In(s.rules.Location)
		}

		if req.CheckOutTime != nil {
			parsed, err := time.Parse(time.RFC3339, *req.CheckOutTime)
			if err != nil {
				return fmt.Errorf("invalid check_out_time: %w", err)
			}
			if record.CheckOut == nil {
				record.CheckOut = &attendance.CheckEvent{Method: attendance.MethodManual}
			}
			record.CheckOut.Time = parsed.In(s.rules.Location)
		}

		if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Time.Before(record.CheckIn.Time) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		if req.OnLeave != nil {
			record.OnLeave = *req.OnLeave
		}
		if req.RemoteWork != nil {
			record.RemoteWork = *req.RemoteWork
		}
		if req.Notes != nil && record.CheckIn != nil {
			record.CheckIn.Notes = req.Notes
		}
		if req.HalfDay != nil {
			if *req.HalfDay {
				record.Status = attendance.StatusHalfDay
			} else if record.Status == attendance.StatusHalfDay {
				record.Status = attendance.StatusPresent
			}
		}

		record.Recompute(s.rules)

		if err := s.attendanceRepo.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(record), nil
}

// runInTx executes fn inside one database transaction. A nil db runs fn
// directly, without transactional scope.
func (s *AttendanceServiceImpl) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if record.ApprovalStatus != attendance.ApprovalPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.now()
	record.ApprovalStatus = attendance.ApprovalApproved
	record.ApprovedBy = &req.ApproverID
	record.ApprovedAt = &now
	record.RejectionReason = nil

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to approve attendance: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if record.ApprovalStatus != attendance.ApprovalPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.now()
	record.ApprovalStatus = attendance.ApprovalRejected
	record.ApprovedBy = &req.ApproverID
	record.ApprovedAt = &now
	record.RejectionReason = &req.Reason

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reject attendance: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
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
func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	var employeeName string
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	resp := attendance.RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      employeeName,
		Date:              rec.Date.Format("2006-01-02"),
		Breaks:            make([]attendance.BreakResponse, 0, len(rec.Breaks)),
		Status:            string(rec.Status),
		TotalWorkHours:    rec.TotalWorkHours,
		TotalBreakHours:   rec.TotalBreakHours,
		NetWorkHours:      rec.NetWorkHours(),
		OvertimeHours:     rec.OvertimeHours,
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		ApprovalStatus:    string(rec.ApprovalStatus),
		ApprovedBy:        rec.ApprovedBy,
		RejectionReason:   rec.RejectionReason,
	}

	if rec.CheckIn != nil {
		checkInTime := rec.CheckIn.Time.Format(time.RFC3339)
		method := string(rec.CheckIn.Method)
		resp.CheckInTime = &checkInTime
		resp.CheckInLocation = rec.CheckIn.Location
		resp.CheckInMethod = &method
	}
	if rec.CheckOut != nil {
		checkOutTime := rec.CheckOut.Time.Format(time.RFC3339)
		method := string(rec.CheckOut.Method)
		resp.CheckOutTime = &checkOutTime
		resp.CheckOutLocation = rec.CheckOut.Location
		resp.CheckOutMethod = &method
	}

	for _, b := range rec.Breaks {
		resp.Breaks = append(resp.Breaks, attendance.BreakResponse{
			StartTime:       b.StartTime.Format(time.RFC3339),
			EndTime:         timePtrToString(b.EndTime),
			DurationMinutes: b.DurationMinutes,
			Type:            string(b.Type),
		})
	}

	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
		resp.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
	}

	return resp
}
