package response

import (
	"errors"
	"net/http"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/gajihub/payroll-backend-go/internal/domain/schedule"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrDetailLineNotFound):
		NotFound(w, "Salary detail line not found")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Payroll component not found")
	case errors.Is(err, payroll.ErrNothingToDelete):
		NotFound(w, "No matching detail lines to delete")
	case errors.Is(err, payroll.ErrRecordNotEditable):
		Conflict(w, "Salary record is not in draft status")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidStatus):
		BadRequest(w, "Invalid salary record status", nil)
	case errors.Is(err, payroll.ErrInvalidLineType):
		BadRequest(w, "Invalid detail line type", nil)
	case errors.Is(err, payroll.ErrInvalidPenaltyKind):
		BadRequest(w, "Penalty kind must be 'late' or 'early'", nil)
	case errors.Is(err, payroll.ErrEmployeeHasNoSalary):
		BadRequest(w, "Employee has no basic salary configured", nil)

	// Supporting domain errors
	case errors.Is(err, schedule.ErrNoScheduleFound):
		NotFound(w, "No schedule found for the period")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Employee request not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
