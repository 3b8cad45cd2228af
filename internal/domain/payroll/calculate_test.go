package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
)

func testRates() Rates {
	return Rates{
		StandardMonthlyHours: decimal.NewFromInt(176),
		OvertimeMultiplier:   decimal.RequireFromString("1.5"),
		TaxRate:              decimal.RequireFromString("0.15"),
		SocialSecurityRate:   decimal.RequireFromString("0.14"),
		HealthInsuranceRate:  decimal.RequireFromString("0.05"),
	}
}

func testEmployee(baseSalary, allowance string) employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		FullName:         "Test Employee",
		BaseSalary:       decimal.RequireFromString(baseSalary),
		MonthlyAllowance: decimal.RequireFromString(allowance),
	}
}

func TestCalculate_HourlyAndOvertimeRates(t *testing.T) {
	// 17,600 / 176 = 100; 2 overtime hours at 1.5x = 300.
	emp := testEmployee("17600", "0")
	summary := attendance.MonthlySummary{TotalOvertimeHours: 2}

	rec := Calculate(emp, 6, 2024, summary, testRates(), CalculateOptions{})

	assert.True(t, rec.CalculationDetails.HourlyRate.Equal(decimal.NewFromInt(100)),
		"hourlyRate = %s", rec.CalculationDetails.HourlyRate)
	assert.True(t, rec.CalculationDetails.OvertimeRate.Equal(decimal.NewFromInt(150)))
	assert.True(t, rec.OvertimePay.Equal(decimal.NewFromInt(300)),
		"overtimePay = %s", rec.OvertimePay)
}

func TestCalculate_NetSalaryIdentity(t *testing.T) {
	emp := testEmployee("17600", "500")
	summary := attendance.MonthlySummary{
		PresentDays:        20,
		LateDays:           2,
		TotalWorkHours:     180,
		TotalOvertimeHours: 4,
	}
	opts := CalculateOptions{
		Bonus:          decimal.NewFromInt(1000),
		OtherDeduction: decimal.NewFromInt(250),
	}

	rec := Calculate(emp, 6, 2024, summary, testRates(), opts)

	gross := rec.GrossSalary.Add(rec.OvertimePay).Add(rec.Bonus).Add(rec.Allowance)
	deducted := rec.Deductions.Tax.
		Add(rec.Deductions.SocialSecurity).
		Add(rec.Deductions.HealthInsurance).
		Add(rec.Deductions.Other)

	assert.True(t, rec.NetSalary.Equal(gross.Sub(deducted)),
		"net %s != gross %s - deductions %s", rec.NetSalary, gross, deducted)
	assert.True(t, rec.TotalDeductions.Equal(deducted))
}

func TestCalculate_DeductionsApplyToTotalGross(t *testing.T) {
	emp := testEmployee("10000", "0")
	summary := attendance.MonthlySummary{TotalOvertimeHours: 0}
	opts := CalculateOptions{Bonus: decimal.NewFromInt(2000)}

	rec := Calculate(emp, 1, 2024, summary, testRates(), opts)

	// tax = (10000 + 2000) * 0.15
	assert.True(t, rec.Deductions.Tax.Equal(decimal.NewFromInt(1800)),
		"tax = %s", rec.Deductions.Tax)
}

func TestCalculate_ZeroHoursBoundary(t *testing.T) {
	emp := testEmployee("17600", "0")
	summary := attendance.MonthlySummary{}

	rec := Calculate(emp, 6, 2024, summary, testRates(), CalculateOptions{})

	assert.True(t, rec.OvertimePay.IsZero())
	assert.True(t, rec.GrossSalary.Equal(emp.BaseSalary),
		"gross is not pro-rated by attendance")
	// net = 17600 * (1 - 0.15 - 0.14 - 0.05) = 17600 * 0.66
	assert.True(t, rec.NetSalary.Equal(decimal.RequireFromString("11616")),
		"net = %s", rec.NetSalary)
}

func TestCalculate_AbsenceDoesNotReduceGross(t *testing.T) {
	emp := testEmployee("17600", "0")
	withAbsence := attendance.MonthlySummary{AbsentDays: 10}
	withoutAbsence := attendance.MonthlySummary{}

	a := Calculate(emp, 6, 2024, withAbsence, testRates(), CalculateOptions{})
	b := Calculate(emp, 6, 2024, withoutAbsence, testRates(), CalculateOptions{})

	assert.True(t, a.GrossSalary.Equal(b.GrossSalary))
	assert.Equal(t, 10, a.AbsentDays)
}

func TestCalculate_CapturesAttendanceInputs(t *testing.T) {
	emp := testEmployee("17600", "0")
	summary := attendance.MonthlySummary{
		PresentDays:        18,
		LateDays:           2,
		LeaveDays:          1,
		AbsentDays:         1,
		TotalWorkHours:     162.5,
		TotalOvertimeHours: 3.5,
	}

	rec := Calculate(emp, 6, 2024, summary, testRates(), CalculateOptions{})

	assert.Equal(t, 20, rec.TotalWorkDays)
	assert.Equal(t, 162.5, rec.TotalWorkHours)
	assert.Equal(t, 3.5, rec.OvertimeHours)
	assert.Equal(t, 1, rec.LeaveDays)
	assert.Equal(t, 1, rec.AbsentDays)
	assert.Equal(t, 2, rec.LateDays)
	assert.Equal(t, PaymentPending, rec.PaymentStatus)
}

func TestRecomputeTotals_RestoresInvariant(t *testing.T) {
	rec := Record{
		GrossSalary: decimal.NewFromInt(10000),
		OvertimePay: decimal.NewFromInt(500),
		Bonus:       decimal.NewFromInt(200),
		Allowance:   decimal.NewFromInt(300),
		Deductions: Deductions{
			Tax:             decimal.NewFromInt(1650),
			SocialSecurity:  decimal.NewFromInt(1540),
			HealthInsurance: decimal.NewFromInt(550),
			Other:           decimal.NewFromInt(100),
		},
		// Stale totals, as if tampered with before a save.
		TotalDeductions: decimal.NewFromInt(1),
		NetSalary:       decimal.NewFromInt(1),
	}

	rec.RecomputeTotals()

	assert.True(t, rec.TotalDeductions.Equal(decimal.NewFromInt(3840)))
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(7160)))
}
