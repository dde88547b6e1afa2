package payroll

import (
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GenerateDraftRequest struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}

func (r *GenerateDraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateAllRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *GenerateAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateAllResponse reports per-user outcomes of a batch run. The batch
// always completes; failures are recorded, not propagated.
type GenerateAllResponse struct {
	Generated int               `json:"generated"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// ========== RECORD DTOs ==========

type RecordResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	UserName        string               `json:"user_name,omitempty"`
	EmployeeCode    *string              `json:"employee_code,omitempty"`
	PeriodYear      int                  `json:"period_year"`
	PeriodMonth     int                  `json:"period_month"`
	Status          string               `json:"status"`
	BasicSalary     decimal.Decimal      `json:"basic_salary"`
	WorkingDays     int                  `json:"working_days"`
	PresentDays     int                  `json:"present_days"`
	GrossEarnings   decimal.Decimal      `json:"gross_earnings"`
	TotalDeductions decimal.Decimal      `json:"total_deductions"`
	NetPay          decimal.Decimal      `json:"net_pay"`
	Audit           *GenerationAudit     `json:"audit,omitempty"`
	Lines           []DetailLineResponse `json:"lines,omitempty"`
}

type DetailLineResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	Editable  bool            `json:"editable"`
	SortOrder int             `json:"sort_order"`
}

type ListRecordsFilter struct {
	UserID *string
	Year   *int
	Month  *int
	Status *string
	Page   int
	Limit  int
}

type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type SetStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !RecordStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, locked, approved, published"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== LINE DTOs ==========

type AddLineRequest struct {
	RecordID string          `json:"-"`
	Code     string          `json:"code"`
	Label    string          `json:"label"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *AddLineRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "is required"})
	}
	if !LineType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'earning' or 'deduction'"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLineRequest struct {
	ID       string           `json:"-"`
	Label    *string          `json:"label,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

func (r *UpdateLineRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Label != nil && validator.IsEmpty(*r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "must not be empty"})
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PENALTY DELETION DTOs ==========

// PenaltyKind selects which generated deduction lines a targeted deletion
// touches.
type PenaltyKind string

const (
	PenaltyLate  PenaltyKind = "late"
	PenaltyEarly PenaltyKind = "early"
)

// Prefix returns the detail-line code prefix for the kind.
func (k PenaltyKind) Prefix() (string, error) {
	switch k {
	case PenaltyLate:
		return CodeLatePrefix, nil
	case PenaltyEarly:
		return CodeEarlyPrefix, nil
	}
	return "", ErrInvalidPenaltyKind
}

type DeletePenaltyLinesRequest struct {
	RecordID string
	Kind     PenaltyKind
	Date     *string // one date ("2006-01-02"); mutually exclusive with From/To
	From     *string
	To       *string
}

func (r *DeletePenaltyLinesRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := r.Kind.Prefix(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'late' or 'early'"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if (r.From == nil) != (r.To == nil) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from and to must be given together"})
	}
	if r.From != nil {
		if _, ok := validator.IsValidDate(*r.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.To != nil {
		if _, ok := validator.IsValidDate(*r.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Date != nil && r.From != nil {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date and from/to are mutually exclusive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== COMPONENT DTOs ==========

type UserComponentResponse struct {
	ID            string          `json:"id"`
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}
