package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus enum
type RecordStatus string

const (
	StatusDraft     RecordStatus = "draft"
	StatusLocked    RecordStatus = "locked"
	StatusApproved  RecordStatus = "approved"
	StatusPublished RecordStatus = "published"
)

func (s RecordStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusLocked, StatusApproved, StatusPublished:
		return true
	}
	return false
}

// LineType enum
type LineType string

const (
	LineTypeEarning   LineType = "earning"
	LineTypeDeduction LineType = "deduction"
)

func (t LineType) Valid() bool {
	return t == LineTypeEarning || t == LineTypeDeduction
}

// Detail-line code scheme. Downstream reporting and the targeted-deletion
// endpoints parse the date or component id out of the code.
const (
	CodeBase     = "BASE"
	CodeOvertime = "OT"

	CodeLatePrefix      = "LATE_IN:"
	CodeEarlyPrefix     = "EARLY_OUT:"
	CodeAllowancePrefix = "ALLOW:"
	CodeDeductionPrefix = "DEDUCT:"
)

func LateLineCode(date time.Time) string {
	return CodeLatePrefix + date.Format("2006-01-02")
}

func EarlyLineCode(date time.Time) string {
	return CodeEarlyPrefix + date.Format("2006-01-02")
}

func AllowanceLineCode(componentID string) string {
	return CodeAllowancePrefix + componentID
}

func DeductionLineCode(componentID string) string {
	return CodeDeductionPrefix + componentID
}

// PenaltyDate extracts the date from a LATE_IN:/EARLY_OUT: code.
func PenaltyDate(code string) (time.Time, error) {
	_, datePart, found := strings.Cut(code, ":")
	if !found {
		return time.Time{}, fmt.Errorf("code %q carries no date", code)
	}
	return time.Parse("2006-01-02", datePart)
}

// Sort buckets for the assembled ledger.
const (
	SortBase               = 10
	SortComponentEarning   = 20
	SortOvertime           = 30
	SortLateDeduction      = 60
	SortEarlyDeduction     = 65
	SortComponentDeduction = 70
)

// SalaryRecord - one payroll header per (user, year, month)
type SalaryRecord struct {
	ID              string
	UserID          string
	PeriodYear      int
	PeriodMonth     int
	Status          RecordStatus
	BasicSalary     decimal.Decimal
	WorkingDays     int
	PresentDays     int
	GrossEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Audit           *GenerationAudit
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	UserName     *string
	EmployeeCode *string
}

// DetailLine - one earning or deduction entry composing a record
type DetailLine struct {
	ID        string
	RecordID  string
	Code      string
	Label     string
	Type      LineType
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
	Editable  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserComponentValue - fixed monthly add-on independent of attendance
type UserComponentValue struct {
	ID            string
	UserID        string
	ComponentID   string
	ComponentName string
	Type          LineType
	Amount        decimal.Decimal
}
