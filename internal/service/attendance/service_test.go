package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.Date.Equal(date) {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindInRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, record := range f.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	record.UpdatedAt = time.Now()
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.Filter) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, record := range f.records {
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	out := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		out.employees[emp.ID] = emp
	}
	return out
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

// ========================================
// HELPERS
// ========================================

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmployeeCode:     "EMP001",
		FullName:         "Rina Wulandari",
		Department:       "Engineering",
		BaseSalary:       decimal.NewFromInt(17600),
		EmploymentStatus: employee.StatusActive,
	}
}

func testService(t *testing.T, clock time.Time, employees ...employee.Employee) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	if len(employees) == 0 {
		employees = []employee.Employee{testEmployee()}
	}
	svc := NewAttendanceService(nil, repo, newFakeEmployeeRepo(employees...), attendance.Rules{
		ShiftStart:         "09:00",
		ShiftEnd:           "17:00",
		StandardShiftHours: 8,
		Location:           time.UTC,
	}).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return clock }
	return svc, repo
}

func setClock(svc *AttendanceServiceImpl, at time.Time) {
	svc.now = func() time.Time { return at }
}

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

// ========================================
// CHECK-IN
// ========================================

func TestCheckIn_Success(t *testing.T) {
	svc, _ := testService(t, at(8, 55))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Rina Wulandari", resp.EmployeeName)
	assert.Equal(t, "2026-03-02", resp.Date)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, string(attendance.ApprovalPending), resp.ApprovalStatus)
	require.NotNil(t, resp.CheckInMethod)
	assert.Equal(t, string(attendance.MethodManual), *resp.CheckInMethod)
}

func TestCheckIn_LateAfterShiftStart(t *testing.T) {
	svc, _ := testService(t, at(9, 10))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 10, resp.LateMinutes)
}

func TestCheckIn_DuplicateSameDay(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_InvalidMethod(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Method:     "telepathy",
	})
	assert.Error(t, err)
}

func TestCheckIn_RemoteWork(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		RemoteWork: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusWorkFromHome), resp.Status)
}

// ========================================
// CHECK-OUT
// ========================================

func TestCheckOut_FullDayWithBreak(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(12, 0))
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1", Type: "lunch"})
	require.NoError(t, err)

	setClock(svc, at(12, 30))
	_, err = svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(18, 0))
	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalWorkHours)
	assert.InDelta(t, 9.0, *resp.TotalWorkHours, 0.001)
	assert.InDelta(t, 0.5, resp.TotalBreakHours, 0.001)
	require.NotNil(t, resp.NetWorkHours)
	assert.InDelta(t, 8.5, *resp.NetWorkHours, 0.001)
	assert.InDelta(t, 1.0, resp.OvertimeHours, 0.001)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _ := testService(t, at(17, 0))

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestCheckOut_Twice(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(17, 0))
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_ClosesOpenBreak(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(16, 0))
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(17, 0))
	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].EndTime)
	assert.Equal(t, 60, resp.Breaks[0].DurationMinutes)
	assert.InDelta(t, 1.0, resp.TotalBreakHours, 0.001)
}

func TestCheckOut_EarlyLeave(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(16, 0))
	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusEarlyLeave), resp.Status)
	assert.Equal(t, 60, resp.EarlyLeaveMinutes)
	assert.InDelta(t, 0.0, resp.OvertimeHours, 0.001)
}

// ========================================
// BREAKS
// ========================================

func TestStartBreak_WithoutCheckIn(t *testing.T) {
	svc, _ := testService(t, at(12, 0))

	_, err := svc.StartBreak(context.Background(), attendance.StartBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestStartBreak_WhileOnBreak(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(12, 0))
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
}

func TestEndBreak_WithoutOpenBreak(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)
}

func TestBreak_MultipleSequential(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(10, 0))
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1", Type: "prayer"})
	require.NoError(t, err)
	setClock(svc, at(10, 15))
	_, err = svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	setClock(svc, at(12, 0))
	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{EmployeeID: "emp-1", Type: "lunch"})
	require.NoError(t, err)
	setClock(svc, at(13, 0))
	resp, err := svc.EndBreak(ctx, attendance.EndBreakRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	require.Len(t, resp.Breaks, 2)
	assert.Equal(t, 15, resp.Breaks[0].DurationMinutes)
	assert.Equal(t, 60, resp.Breaks[1].DurationMinutes)
	assert.InDelta(t, 1.25, resp.TotalBreakHours, 0.001)
}

// ========================================
// SUMMARY
// ========================================

func TestSummarize_AggregatesRange(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	// Three worked days within the first week of March.
	for _, d := range []int{2, 3, 4} {
		svc.now = func() time.Time { return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC) }
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Date(2026, 3, d, 17, 0, 0, 0, time.UTC) }
		_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)
	}

	summary, err := svc.Summarize(ctx, "emp-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalDays)
	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
	assert.InDelta(t, 24.0, summary.TotalWorkHours, 0.001)
}

func TestSummarize_EndDateInclusiveWestOfUTC(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(nil, repo, newFakeEmployeeRepo(testEmployee()), attendance.Rules{
		ShiftStart:         "09:00",
		ShiftEnd:           "17:00",
		StandardShiftHours: 8,
		Location:           newYork,
	}).(*AttendanceServiceImpl)
	ctx := context.Background()

	// Worked the last day of March, local time.
	setClock(svc, time.Date(2026, 3, 31, 9, 0, 0, 0, newYork))
	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	setClock(svc, time.Date(2026, 3, 31, 17, 0, 0, 0, newYork))
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// Bounds arrive as zoneless date strings, parsed to UTC midnights.
	start, err := time.Parse("2006-01-02", "2026-03-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2026-03-31")
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx, "emp-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalDays)
	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, "2026-03-31", summary.EndDate)
}

// ========================================
// UPDATE / APPROVAL
// ========================================

func TestUpdate_FixCheckOutTime(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	checkOut := at(17, 0).Format(time.RFC3339)
	resp, err := svc.Update(ctx, attendance.UpdateRequest{
		ID:           created.ID,
		CheckOutTime: &checkOut,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalWorkHours)
	assert.InDelta(t, 8.0, *resp.TotalWorkHours, 0.001)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestUpdate_CheckOutBeforeCheckIn(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	checkOut := at(8, 0).Format(time.RFC3339)
	_, err = svc.Update(ctx, attendance.UpdateRequest{
		ID:           created.ID,
		CheckOutTime: &checkOut,
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestUpdate_OnLeaveOverridesStatus(t *testing.T) {
	svc, _ := testService(t, at(9, 30))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), created.Status)

	onLeave := true
	resp, err := svc.Update(ctx, attendance.UpdateRequest{ID: created.ID, OnLeave: &onLeave})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusOnLeave), resp.Status)
}

func TestUpdate_HalfDayPreserved(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	halfDay := true
	resp, err := svc.Update(ctx, attendance.UpdateRequest{ID: created.ID, HalfDay: &halfDay})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)

	// Checkout recomputes derived hours but keeps the half_day marker.
	setClock(svc, at(13, 0))
	resp, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
}

func TestApprove_Pending(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	resp, err := svc.Approve(ctx, attendance.ApproveRequest{ID: created.ID, ApproverID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.ApprovalApproved), resp.ApprovalStatus)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "mgr-1", *resp.ApprovedBy)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, attendance.ApproveRequest{ID: created.ID, ApproverID: "mgr-1"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, attendance.ApproveRequest{ID: created.ID, ApproverID: "mgr-2"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyProcessed)
}

func TestReject_RequiresReason(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, attendance.RejectRequest{ID: created.ID, ApproverID: "mgr-1"})
	assert.Error(t, err)

	resp, err := svc.Reject(ctx, attendance.RejectRequest{ID: created.ID, ApproverID: "mgr-1", Reason: "wrong location"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.ApprovalRejected), resp.ApprovalStatus)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "wrong location", *resp.RejectionReason)
}

// ========================================
// LIST / DELETE
// ========================================

func TestList_Pagination(t *testing.T) {
	svc, _ := testService(t, at(9, 0))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, attendance.Filter{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "1-1 of 1", resp.Showing)
	require.Len(t, resp.Records, 1)
}

func TestList_Empty(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	resp, err := svc.List(context.Background(), attendance.Filter{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.TotalCount)
	assert.Equal(t, "0 of 0", resp.Showing)
	assert.Empty(t, resp.Records)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := testService(t, at(9, 0))

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
