package payroll

import "errors"

var (
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrDetailLineNotFound   = errors.New("salary detail line not found")
	ErrRecordNotEditable    = errors.New("salary record is not in draft status")
	ErrInvalidStatus        = errors.New("invalid salary record status")
	ErrInvalidLineType      = errors.New("invalid detail line type")
	ErrInvalidPenaltyKind   = errors.New("penalty kind must be 'late' or 'early'")
	ErrEmployeeHasNoSalary  = errors.New("employee has no basic salary configured")
	ErrComponentNotFound    = errors.New("payroll component not found")
	ErrNothingToDelete      = errors.New("no matching detail lines to delete")
)
