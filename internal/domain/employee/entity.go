package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	Department       string
	Position         *string
	BaseSalary       decimal.Decimal
	MonthlyAllowance decimal.Decimal
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
	StatusResigned EmploymentStatus = "resigned"
)

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == StatusActive
}
