package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/gajihub/payroll-backend-go/internal/domain/schedule"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Options tune the draft generation behaviour.
type Options struct {
	// ProrateBaseSalary scales the base line by presentDays/workingDays.
	// Off by default: the base line carries the full monthly salary.
	ProrateBaseSalary bool
	// BatchWorkers caps concurrent per-user generations in GenerateAll.
	BatchWorkers int
}

const defaultBatchWorkers = 4

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	requestRepo    request.RequestRepository
	payrollRepo    payroll.PayrollRepository
	loc            *time.Location
	opts           Options
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	requestRepo request.RequestRepository,
	payrollRepo payroll.PayrollRepository,
	loc *time.Location,
	opts Options,
) payroll.PayrollService {
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = defaultBatchWorkers
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		requestRepo:    requestRepo,
		payrollRepo:    payrollRepo,
		loc:            loc,
		opts:           opts,
	}
}

func (s *PayrollServiceImpl) GenerateDraft(ctx context.Context, req payroll.GenerateDraftRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if !emp.BasicSalary.IsPositive() {
		return payroll.RecordResponse{}, payroll.ErrEmployeeHasNoSalary
	}

	period, err := payroll.ResolvePeriod(req.Year, req.Month, s.loc)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	tolerance, err := s.employeeRepo.GetLateToleranceMinutes(ctx, req.UserID)
	if err != nil {
		tolerance = 0
	}

	record, lines, err := s.computeDraft(ctx, emp, period, tolerance)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	stored, err := s.payrollRepo.ReplaceDraft(ctx, record, lines)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to persist draft: %w", err)
	}

	storedLines, err := s.payrollRepo.GetLinesByRecord(ctx, stored.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	resp := toRecordResponse(stored, storedLines)
	if resp.UserName == "" {
		resp.UserName = emp.FullName
	}
	return resp, nil
}

// computeDraft walks the period day by day and assembles the header and its
// detail lines. Pure with respect to the payroll repository; reads only.
func (s *PayrollServiceImpl) computeDraft(ctx context.Context, emp employee.Employee, period payroll.Period, tolerance int) (payroll.SalaryRecord, []payroll.DetailLine, error) {
	entries, err := s.scheduleRepo.GetEntriesInRange(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	shiftChanges, err := s.requestRepo.GetApprovedShiftChanges(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	overtimeReqs, err := s.requestRepo.GetApprovedOvertime(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	timeOffs, err := s.requestRepo.GetApprovedTimeOff(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	manuals, err := s.attendanceRepo.GetApprovedManualInRange(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	components, err := s.payrollRepo.GetUserComponents(ctx, emp.ID)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}

	// One fetch for the whole period, wide enough to cover the matching
	// window of the first and last shift including overnight ones.
	eventsFrom := period.Start.Add(-matchWindowBefore)
	eventsTo := period.End.AddDate(0, 0, 2).Add(matchWindowAfter)
	events, err := s.attendanceRepo.GetEventsBetween(ctx, emp.ID, eventsFrom, eventsTo)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}

	days, err := resolveSchedule(entries, shiftChanges, s.loc)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}

	manualByDate := make(map[string]attendance.ManualAttendance, len(manuals))
	for _, m := range manuals {
		manualByDate[dayKey(m.Date)] = m
	}

	excused := func(date time.Time) bool {
		for _, t := range timeOffs {
			if t.Covers(date) {
				return true
			}
		}
		return false
	}

	audit := &payroll.GenerationAudit{
		PeriodStart:      dayKey(period.Start),
		PeriodEnd:        dayKey(period.End),
		Timezone:         s.loc.String(),
		ToleranceMinutes: tolerance,
		ScheduledHours:   decimal.Zero,
	}

	var lines []payroll.DetailLine
	var lateLines, earlyLines []payroll.DetailLine

	for _, date := range period.Dates() {
		ds, ok := days[dayKey(date)]
		if !ok || ds.Off {
			continue
		}

		audit.WorkingDays++
		audit.ScheduledHours = audit.ScheduledHours.Add(
			decimal.NewFromInt(int64(ds.End.Sub(ds.Start) / time.Minute)).Div(decimal.NewFromInt(60)))

		pair := matchPair(events, ds.Start, ds.End)
		if !pair.HasIn {
			if m, ok := manualByDate[dayKey(date)]; ok {
				pair, err = manualPair(date, m, s.loc)
				if err != nil {
					return payroll.SalaryRecord{}, nil, err
				}
			}
		}

		present, reason := classifyDay(pair)
		if !present {
			// Approved time off only excuses a day that was not worked. A
			// worked day stays in the normal flow so penalties still apply.
			if excused(date) {
				audit.PresentDays++
				audit.ExcusedDays++
			} else {
				audit.Absences = append(audit.Absences, payroll.AbsenceEntry{Date: dayKey(date), Reason: reason})
			}
			continue
		}
		audit.PresentDays++

		rawLate := lateMinutes(pair.In, ds.Start, ds.End)
		effLate := rawLate - tolerance
		if effLate < 0 {
			effLate = 0
		}
		audit.RawLateMinutes += rawLate
		audit.EffectiveLateMinutes += effLate

		if amount := penaltyTier(effLate); amount.IsPositive() {
			lateLines = append(lateLines, payroll.DetailLine{
				Code:      payroll.LateLineCode(date),
				Label:     "Late check-in " + dayKey(date),
				Type:      payroll.LineTypeDeduction,
				Quantity:  decimal.NewFromInt(int64(effLate)),
				Rate:      decimal.Zero,
				Amount:    amount,
				SortOrder: payroll.SortLateDeduction,
			})
		}

		early := earlyLeaveMinutes(pair.Out, ds.End)
		audit.EarlyLeaveMinutes += early
		if amount := penaltyTier(early); amount.IsPositive() {
			earlyLines = append(earlyLines, payroll.DetailLine{
				Code:      payroll.EarlyLineCode(date),
				Label:     "Early leave " + dayKey(date),
				Type:      payroll.LineTypeDeduction,
				Quantity:  decimal.NewFromInt(int64(early)),
				Rate:      decimal.Zero,
				Amount:    amount,
				SortOrder: payroll.SortEarlyDeduction,
			})
		}
	}

	baseAmount := emp.BasicSalary
	if s.opts.ProrateBaseSalary && audit.WorkingDays > 0 {
		baseAmount = emp.BasicSalary.
			Mul(decimal.NewFromInt(int64(audit.PresentDays))).
			Div(decimal.NewFromInt(int64(audit.WorkingDays)))
	}
	lines = append(lines, payroll.DetailLine{
		Code:      payroll.CodeBase,
		Label:     "Basic salary",
		Type:      payroll.LineTypeEarning,
		Quantity:  decimal.NewFromInt(1),
		Rate:      emp.BasicSalary,
		Amount:    baseAmount,
		SortOrder: payroll.SortBase,
	})

	audit.ComponentEarnings = decimal.Zero
	audit.ComponentDeductions = decimal.Zero
	var componentDeductionLines []payroll.DetailLine
	for _, c := range components {
		if c.Amount.IsZero() {
			continue
		}
		line := payroll.DetailLine{
			Label:     c.ComponentName,
			Type:      c.Type,
			Quantity:  decimal.NewFromInt(1),
			Rate:      c.Amount,
			Amount:    c.Amount,
			Editable:  true,
			SortOrder: payroll.SortComponentEarning,
		}
		switch c.Type {
		case payroll.LineTypeEarning:
			line.Code = payroll.AllowanceLineCode(c.ComponentID)
			audit.ComponentEarnings = audit.ComponentEarnings.Add(c.Amount)
			lines = append(lines, line)
		case payroll.LineTypeDeduction:
			line.Code = payroll.DeductionLineCode(c.ComponentID)
			line.SortOrder = payroll.SortComponentDeduction
			audit.ComponentDeductions = audit.ComponentDeductions.Add(c.Amount)
			componentDeductionLines = append(componentDeductionLines, line)
		}
	}

	rate := hourlyOvertimeRate(emp.BasicSalary)
	audit.HourlyOvertimeRate = rate
	ot, err := aggregateOvertime(overtimeReqs, rate, s.loc)
	if err != nil {
		return payroll.SalaryRecord{}, nil, err
	}
	audit.OvertimeHours = ot.Hours
	audit.Overtime = ot.Breakdown
	if ot.Amount.IsPositive() {
		lines = append(lines, payroll.DetailLine{
			Code:      payroll.CodeOvertime,
			Label:     "Overtime",
			Type:      payroll.LineTypeEarning,
			Quantity:  ot.Hours,
			Rate:      rate,
			Amount:    ot.Amount,
			SortOrder: payroll.SortOvertime,
		})
	}

	lines = append(lines, lateLines...)
	lines = append(lines, earlyLines...)
	lines = append(lines, componentDeductionLines...)

	gross := decimal.Zero
	deductions := decimal.Zero
	for _, line := range lines {
		if line.Type == payroll.LineTypeEarning {
			gross = gross.Add(line.Amount)
		} else {
			deductions = deductions.Add(line.Amount)
		}
	}

	record := payroll.SalaryRecord{
		UserID:          emp.ID,
		PeriodYear:      period.Year,
		PeriodMonth:     period.Month,
		Status:          payroll.StatusDraft,
		BasicSalary:     emp.BasicSalary,
		WorkingDays:     audit.WorkingDays,
		PresentDays:     audit.PresentDays,
		GrossEarnings:   gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions),
		Audit:           audit,
	}

	return record, lines, nil
}

func (s *PayrollServiceImpl) GenerateAll(ctx context.Context, req payroll.GenerateAllRequest) (payroll.GenerateAllResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateAllResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GenerateAllResponse{}, err
	}

	var mu sync.Mutex
	resp := payroll.GenerateAllResponse{Failed: map[string]string{}}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchWorkers)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			_, err := s.GenerateDraft(gctx, payroll.GenerateDraftRequest{
				UserID: emp.ID,
				Year:   req.Year,
				Month:  req.Month,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				resp.Failed[emp.ID] = err.Error()
			} else {
				resp.Generated++
			}
			// Per-user failures never abort the batch.
			return nil
		})
	}

	_ = g.Wait()

	if len(resp.Failed) == 0 {
		resp.Failed = nil
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	lines, err := s.payrollRepo.GetLinesByRecord(ctx, rec.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toRecordResponse(rec, lines), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.ListRecordsFilter) (payroll.ListRecordsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.ListRecords(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	data := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, toRecordResponse(rec, nil))
	}

	return payroll.ListRecordsResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) SetStatus(ctx context.Context, req payroll.SetStatusRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	if err := s.payrollRepo.SetStatus(ctx, req.ID, payroll.RecordStatus(req.Status)); err != nil {
		return payroll.RecordResponse{}, err
	}

	return s.GetRecord(ctx, req.ID)
}

func (s *PayrollServiceImpl) AddLine(ctx context.Context, req payroll.AddLineRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status != payroll.StatusDraft {
		return payroll.RecordResponse{}, payroll.ErrRecordNotEditable
	}

	sortOrder := payroll.SortComponentEarning
	if payroll.LineType(req.Type) == payroll.LineTypeDeduction {
		sortOrder = payroll.SortComponentDeduction
	}

	_, err = s.payrollRepo.AddLine(ctx, payroll.DetailLine{
		RecordID:  rec.ID,
		Code:      req.Code,
		Label:     req.Label,
		Type:      payroll.LineType(req.Type),
		Quantity:  req.Quantity,
		Rate:      req.Rate,
		Amount:    req.Amount,
		Editable:  true,
		SortOrder: sortOrder,
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return s.GetRecord(ctx, rec.ID)
}

func (s *PayrollServiceImpl) UpdateLine(ctx context.Context, req payroll.UpdateLineRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	line, err := s.payrollRepo.GetLineByID(ctx, req.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	rec, err := s.payrollRepo.GetRecordByID(ctx, line.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status != payroll.StatusDraft {
		return payroll.RecordResponse{}, payroll.ErrRecordNotEditable
	}

	if err := s.payrollRepo.UpdateLine(ctx, req); err != nil {
		return payroll.RecordResponse{}, err
	}

	return s.GetRecord(ctx, rec.ID)
}

func (s *PayrollServiceImpl) DeleteLine(ctx context.Context, lineID string) (payroll.RecordResponse, error) {
	line, err := s.payrollRepo.GetLineByID(ctx, lineID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	rec, err := s.payrollRepo.GetRecordByID(ctx, line.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status != payroll.StatusDraft {
		return payroll.RecordResponse{}, payroll.ErrRecordNotEditable
	}

	if err := s.payrollRepo.DeleteLine(ctx, lineID); err != nil {
		return payroll.RecordResponse{}, err
	}

	return s.GetRecord(ctx, rec.ID)
}

func (s *PayrollServiceImpl) DeletePenaltyLines(ctx context.Context, req payroll.DeletePenaltyLinesRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	prefix, err := req.Kind.Prefix()
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status != payroll.StatusDraft {
		return payroll.RecordResponse{}, payroll.ErrRecordNotEditable
	}

	var deleted int64
	switch {
	case req.Date != nil:
		date, _ := validator.IsValidDate(*req.Date)
		deleted, err = s.payrollRepo.DeletePenaltyLineByDate(ctx, rec.ID, prefix, date)
	case req.From != nil:
		from, _ := validator.IsValidDate(*req.From)
		to, _ := validator.IsValidDate(*req.To)
		deleted, err = s.payrollRepo.DeletePenaltyLinesInRange(ctx, rec.ID, prefix, from, to)
	default:
		deleted, err = s.payrollRepo.DeletePenaltyLines(ctx, rec.ID, prefix)
	}
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if deleted == 0 {
		return payroll.RecordResponse{}, payroll.ErrNothingToDelete
	}

	return s.GetRecord(ctx, rec.ID)
}

func (s *PayrollServiceImpl) ListUserComponents(ctx context.Context, userID string) ([]payroll.UserComponentResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	components, err := s.payrollRepo.GetUserComponents(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.UserComponentResponse, 0, len(components))
	for _, c := range components {
		resp = append(resp, payroll.UserComponentResponse{
			ID:            c.ID,
			ComponentID:   c.ComponentID,
			ComponentName: c.ComponentName,
			Type:          string(c.Type),
			Amount:        c.Amount,
		})
	}
	return resp, nil
}

func toRecordResponse(rec payroll.SalaryRecord, lines []payroll.DetailLine) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:              rec.ID,
		UserID:          rec.UserID,
		EmployeeCode:    rec.EmployeeCode,
		PeriodYear:      rec.PeriodYear,
		PeriodMonth:     rec.PeriodMonth,
		Status:          string(rec.Status),
		BasicSalary:     rec.BasicSalary,
		WorkingDays:     rec.WorkingDays,
		PresentDays:     rec.PresentDays,
		GrossEarnings:   rec.GrossEarnings,
		TotalDeductions: rec.TotalDeductions,
		NetPay:          rec.NetPay,
		Audit:           rec.Audit,
	}
	if rec.UserName != nil {
		resp.UserName = *rec.UserName
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, payroll.DetailLineResponse{
			ID:        line.ID,
			Code:      line.Code,
			Label:     line.Label,
			Type:      string(line.Type),
			Quantity:  line.Quantity,
			Rate:      line.Rate,
			Amount:    line.Amount,
			Editable:  line.Editable,
			SortOrder: line.SortOrder,
		})
	}
	return resp
}
