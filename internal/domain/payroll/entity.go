package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Deductions itemizes what is withheld from the gross pay.
type Deductions struct {
	Tax             decimal.Decimal `json:"tax"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	HealthInsurance decimal.Decimal `json:"health_insurance"`
	Other           decimal.Decimal `json:"other"`
}

func (d Deductions) Sum() decimal.Decimal {
	return d.Tax.Add(d.SocialSecurity).Add(d.HealthInsurance).Add(d.Other)
}

// CalculationDetails captures the rates a record was computed with, so a
// stored record stays explainable after configuration changes.
type CalculationDetails struct {
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	SocialSecurityRate  decimal.Decimal `json:"social_security_rate"`
	HealthInsuranceRate decimal.Decimal `json:"health_insurance_rate"`
}

// Record is one employee's payroll for one (month, year) period. At most one
// record exists per period; the repository enforces this with a unique
// constraint.
type Record struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	// Inputs captured at creation.
	BaseSalary     decimal.Decimal
	TotalWorkDays  int
	TotalWorkHours float64
	OvertimeHours  float64
	LeaveDays      int
	AbsentDays     int
	LateDays       int

	// Computed amounts.
	GrossSalary        decimal.Decimal
	OvertimePay        decimal.Decimal
	Bonus              decimal.Decimal
	Allowance          decimal.Decimal
	Deductions         Deductions
	TotalDeductions    decimal.Decimal
	NetSalary          decimal.Decimal
	CalculationDetails CalculationDetails

	PaymentStatus PaymentStatus
	ApprovedBy    *string
	ApprovedAt    *time.Time
	PaidAt        *time.Time
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// TotalGross is the pay before deductions.
func (r *Record) TotalGross() decimal.Decimal {
	return r.GrossSalary.Add(r.OvertimePay).Add(r.Bonus).Add(r.Allowance)
}

// RecomputeTotals re-derives TotalDeductions and NetSalary from their parts.
// Every save path invokes it, so the stored record always satisfies
// net = (gross + overtime + bonus + allowance) - deductions.
func (r *Record) RecomputeTotals() {
	r.TotalDeductions = r.Deductions.Sum()
	r.NetSalary = r.TotalGross().Sub(r.TotalDeductions)
}
