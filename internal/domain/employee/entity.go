package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee - payroll-relevant slice of the user profile
type Employee struct {
	ID                   string
	FullName             string
	EmployeeCode         *string
	BasicSalary          decimal.Decimal
	LateToleranceMinutes int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
