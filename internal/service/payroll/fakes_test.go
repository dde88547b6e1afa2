package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/gajihub/payroll-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// In-memory repositories for engine tests. They mirror the transactional
// semantics of the SQL layer: line mutations recompute header totals, and the
// draft upsert is keyed by (user, year, month).

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetLateToleranceMinutes(_ context.Context, id string) (int, error) {
	e, ok := f.employees[id]
	if !ok {
		return 0, employee.ErrEmployeeNotFound
	}
	return e.LateToleranceMinutes, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

type fakeScheduleRepo struct {
	entries map[string][]schedule.Entry
}

func (f *fakeScheduleRepo) GetEntriesInRange(_ context.Context, userID string, from, to time.Time) ([]schedule.Entry, error) {
	var out []schedule.Entry
	for _, e := range f.entries[userID] {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	events  map[string][]attendance.Event
	manuals map[string][]attendance.ManualAttendance
}

func (f *fakeAttendanceRepo) GetEventsBetween(_ context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events[userID] {
		if !e.RecordedAt.Before(from) && e.RecordedAt.Before(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

func (f *fakeAttendanceRepo) GetApprovedManualInRange(_ context.Context, userID string, from, to time.Time) ([]attendance.ManualAttendance, error) {
	var out []attendance.ManualAttendance
	for _, m := range f.manuals[userID] {
		if m.Status == "approved" && !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	shiftChanges map[string][]request.ShiftChange
	overtime     map[string][]request.Overtime
	timeOff      map[string][]request.TimeOff
}

func (f *fakeRequestRepo) GetApprovedShiftChanges(_ context.Context, userID string, from, to time.Time) ([]request.ShiftChange, error) {
	var out []request.ShiftChange
	for _, sc := range f.shiftChanges[userID] {
		if !sc.Date.Before(from) && !sc.Date.After(to) {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) GetApprovedOvertime(_ context.Context, userID string, from, to time.Time) ([]request.Overtime, error) {
	var out []request.Overtime
	for _, ot := range f.overtime[userID] {
		if !ot.Date.Before(from) && !ot.Date.After(to) {
			out = append(out, ot)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) GetApprovedTimeOff(_ context.Context, userID string, from, to time.Time) ([]request.TimeOff, error) {
	var out []request.TimeOff
	for _, toff := range f.timeOff[userID] {
		if !toff.StartDate.After(to) && !toff.EndDate.Before(from) {
			out = append(out, toff)
		}
	}
	return out, nil
}

type fakePayrollRepo struct {
	mu         sync.Mutex
	seq        int
	records    map[string]*payroll.SalaryRecord
	byKey      map[string]string
	lines      map[string][]payroll.DetailLine
	components map[string][]payroll.UserComponentValue
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		records:    map[string]*payroll.SalaryRecord{},
		byKey:      map[string]string{},
		lines:      map[string][]payroll.DetailLine{},
		components: map[string][]payroll.UserComponentValue{},
	}
}

func (f *fakePayrollRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func periodKey(userID string, year, month int) string {
	return fmt.Sprintf("%s|%d|%d", userID, year, month)
}

func (f *fakePayrollRepo) recalc(recordID string) {
	rec := f.records[recordID]
	gross, deductions := decimal.Zero, decimal.Zero
	for _, line := range f.lines[recordID] {
		if line.Type == payroll.LineTypeEarning {
			gross = gross.Add(line.Amount)
		} else {
			deductions = deductions.Add(line.Amount)
		}
	}
	rec.GrossEarnings = gross
	rec.TotalDeductions = deductions
	rec.NetPay = gross.Sub(deductions)
}

func (f *fakePayrollRepo) ReplaceDraft(_ context.Context, record payroll.SalaryRecord, lines []payroll.DetailLine) (payroll.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := periodKey(record.UserID, record.PeriodYear, record.PeriodMonth)
	id, ok := f.byKey[key]
	if !ok {
		id = f.nextID("rec")
		f.byKey[key] = id
		record.CreatedAt = time.Now()
	}
	record.ID = id
	record.Status = payroll.StatusDraft
	record.UpdatedAt = time.Now()
	f.records[id] = &record

	stored := make([]payroll.DetailLine, 0, len(lines))
	for _, line := range lines {
		if line.ID == "" {
			line.ID = f.nextID("line")
		}
		line.RecordID = id
		stored = append(stored, line)
	}
	f.lines[id] = stored
	f.recalc(id)

	return *f.records[id], nil
}

func (f *fakePayrollRepo) GetRecordByID(_ context.Context, id string) (payroll.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
	}
	return *rec, nil
}

func (f *fakePayrollRepo) GetRecordByUserPeriod(_ context.Context, userID string, year, month int) (payroll.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byKey[periodKey(userID, year, month)]
	if !ok {
		return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
	}
	return *f.records[id], nil
}

func (f *fakePayrollRepo) ListRecords(_ context.Context, filter payroll.ListRecordsFilter) ([]payroll.SalaryRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []payroll.SalaryRecord
	for _, rec := range f.records {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.Year != nil && rec.PeriodYear != *filter.Year {
			continue
		}
		if filter.Month != nil && rec.PeriodMonth != *filter.Month {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		matched = append(matched, *rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakePayrollRepo) SetStatus(_ context.Context, id string, status payroll.RecordStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return payroll.ErrSalaryRecordNotFound
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakePayrollRepo) GetLinesByRecord(_ context.Context, recordID string) ([]payroll.DetailLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]payroll.DetailLine, len(f.lines[recordID]))
	copy(lines, f.lines[recordID])
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].SortOrder != lines[j].SortOrder {
			return lines[i].SortOrder < lines[j].SortOrder
		}
		return lines[i].Code < lines[j].Code
	})
	return lines, nil
}

func (f *fakePayrollRepo) GetLineByID(_ context.Context, id string) (payroll.DetailLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, lines := range f.lines {
		for _, line := range lines {
			if line.ID == id {
				return line, nil
			}
		}
	}
	return payroll.DetailLine{}, payroll.ErrDetailLineNotFound
}

func (f *fakePayrollRepo) AddLine(_ context.Context, line payroll.DetailLine) (payroll.DetailLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[line.RecordID]; !ok {
		return payroll.DetailLine{}, payroll.ErrSalaryRecordNotFound
	}
	if line.ID == "" {
		line.ID = f.nextID("line")
	}
	f.lines[line.RecordID] = append(f.lines[line.RecordID], line)
	f.recalc(line.RecordID)
	return line, nil
}

func (f *fakePayrollRepo) UpdateLine(_ context.Context, req payroll.UpdateLineRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for recordID, lines := range f.lines {
		for i, line := range lines {
			if line.ID != req.ID {
				continue
			}
			if req.Label != nil {
				line.Label = *req.Label
			}
			if req.Quantity != nil {
				line.Quantity = *req.Quantity
			}
			if req.Rate != nil {
				line.Rate = *req.Rate
			}
			if req.Amount != nil {
				line.Amount = *req.Amount
			}
			lines[i] = line
			f.recalc(recordID)
			return nil
		}
	}
	return payroll.ErrDetailLineNotFound
}

func (f *fakePayrollRepo) DeleteLine(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for recordID, lines := range f.lines {
		for i, line := range lines {
			if line.ID == id {
				f.lines[recordID] = append(lines[:i:i], lines[i+1:]...)
				f.recalc(recordID)
				return nil
			}
		}
	}
	return payroll.ErrDetailLineNotFound
}

func (f *fakePayrollRepo) deleteWhere(recordID string, match func(payroll.DetailLine) bool) int64 {
	var kept []payroll.DetailLine
	var deleted int64
	for _, line := range f.lines[recordID] {
		if match(line) {
			deleted++
			continue
		}
		kept = append(kept, line)
	}
	f.lines[recordID] = kept
	f.recalc(recordID)
	return deleted
}

func (f *fakePayrollRepo) DeletePenaltyLines(_ context.Context, recordID, codePrefix string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[recordID]; !ok {
		return 0, payroll.ErrSalaryRecordNotFound
	}
	return f.deleteWhere(recordID, func(line payroll.DetailLine) bool {
		return strings.HasPrefix(line.Code, codePrefix)
	}), nil
}

func (f *fakePayrollRepo) DeletePenaltyLineByDate(_ context.Context, recordID, codePrefix string, date time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[recordID]; !ok {
		return 0, payroll.ErrSalaryRecordNotFound
	}
	code := codePrefix + date.Format("2006-01-02")
	return f.deleteWhere(recordID, func(line payroll.DetailLine) bool {
		return line.Code == code
	}), nil
}

func (f *fakePayrollRepo) DeletePenaltyLinesInRange(_ context.Context, recordID, codePrefix string, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[recordID]; !ok {
		return 0, payroll.ErrSalaryRecordNotFound
	}
	return f.deleteWhere(recordID, func(line payroll.DetailLine) bool {
		if !strings.HasPrefix(line.Code, codePrefix) {
			return false
		}
		date, err := payroll.PenaltyDate(line.Code)
		if err != nil {
			return false
		}
		return !date.Before(from.Truncate(24*time.Hour)) && !date.After(to.Truncate(24*time.Hour))
	}), nil
}

func (f *fakePayrollRepo) GetUserComponents(_ context.Context, userID string) ([]payroll.UserComponentValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.components[userID], nil
}
