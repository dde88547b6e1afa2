package payroll

import "github.com/shopspring/decimal"

// GenerationAudit records how a draft was computed. Stored as a JSON
// document on the header row; marshalled only at the persistence boundary.
type GenerationAudit struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Timezone    string `json:"timezone"`

	WorkingDays int            `json:"working_days"`
	PresentDays int            `json:"present_days"`
	ExcusedDays int            `json:"excused_days"`
	Absences    []AbsenceEntry `json:"absences,omitempty"`

	ScheduledHours decimal.Decimal `json:"scheduled_hours"`

	ToleranceMinutes     int `json:"tolerance_minutes"`
	RawLateMinutes       int `json:"raw_late_minutes"`
	EffectiveLateMinutes int `json:"effective_late_minutes"`
	EarlyLeaveMinutes    int `json:"early_leave_minutes"`

	OvertimeHours      decimal.Decimal     `json:"overtime_hours"`
	HourlyOvertimeRate decimal.Decimal     `json:"hourly_overtime_rate"`
	Overtime           []OvertimeBreakdown `json:"overtime_breakdown,omitempty"`

	ComponentEarnings   decimal.Decimal `json:"component_earnings"`
	ComponentDeductions decimal.Decimal `json:"component_deductions"`
}

type AbsenceEntry struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Absence reasons
const (
	AbsenceNoAttendance    = "no_attendance"
	AbsenceMissingCheckin  = "missing_checkin"
	AbsenceMissingCheckout = "missing_checkout"
)

// OvertimeBreakdown is the per-date overtime trace kept for auditability.
type OvertimeBreakdown struct {
	Date       string          `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Amount     decimal.Decimal `json:"amount"`
	RequestIDs []string        `json:"request_ids"`
}
