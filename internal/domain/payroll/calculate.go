package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/daksa-hr/hrops-backend-go/internal/domain/attendance"
	"github.com/daksa-hr/hrops-backend-go/internal/domain/employee"
)

// Rates carries the configured payroll constants.
type Rates struct {
	StandardMonthlyHours decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
	TaxRate              decimal.Decimal
	SocialSecurityRate   decimal.Decimal
	HealthInsuranceRate  decimal.Decimal
}

// CalculateOptions are the caller-supplied amounts a derivation cannot know.
type CalculateOptions struct {
	Bonus          decimal.Decimal
	OtherDeduction decimal.Decimal
}

// Calculate derives a payroll record for one employee-period from the base
// salary and an attendance summary. Pure: no I/O, deterministic for its
// inputs. Base pay is not pro-rated by absence; absent and leave days are
// captured for reporting only.
func Calculate(emp employee.Employee, month, year int, summary attendance.MonthlySummary, rates Rates, opts CalculateOptions) Record {
	hourlyRate := emp.BaseSalary.Div(rates.StandardMonthlyHours)
	overtimeRate := hourlyRate.Mul(rates.OvertimeMultiplier)

	grossSalary := emp.BaseSalary
	overtimePay := decimal.NewFromFloat(summary.TotalOvertimeHours).Mul(overtimeRate)
	allowance := emp.MonthlyAllowance

	record := Record{
		EmployeeID:  emp.ID,
		PeriodMonth: month,
		PeriodYear:  year,

		BaseSalary:     emp.BaseSalary,
		TotalWorkDays:  summary.PresentDays + summary.LateDays,
		TotalWorkHours: summary.TotalWorkHours,
		OvertimeHours:  summary.TotalOvertimeHours,
		LeaveDays:      summary.LeaveDays,
		AbsentDays:     summary.AbsentDays,
		LateDays:       summary.LateDays,

		GrossSalary: grossSalary,
		OvertimePay: overtimePay,
		Bonus:       opts.Bonus,
		Allowance:   allowance,

		CalculationDetails: CalculationDetails{
			HourlyRate:          hourlyRate,
			OvertimeRate:        overtimeRate,
			TaxRate:             rates.TaxRate,
			SocialSecurityRate:  rates.SocialSecurityRate,
			HealthInsuranceRate: rates.HealthInsuranceRate,
		},

		PaymentStatus: PaymentPending,
	}

	// Flat-percentage deductions apply to the full gross, overtime and bonus
	// included.
	totalGross := record.TotalGross()
	record.Deductions = Deductions{
		Tax:             totalGross.Mul(rates.TaxRate),
		SocialSecurity:  totalGross.Mul(rates.SocialSecurityRate),
		HealthInsurance: totalGross.Mul(rates.HealthInsuranceRate),
		Other:           opts.OtherDeduction,
	}
	record.RecomputeTotals()

	return record
}
