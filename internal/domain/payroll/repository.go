package payroll

import (
	"context"
	"time"
)

// PayrollRepository persists salary records and their detail lines.
//
// Mutating methods that touch detail lines (ReplaceDraft, AddLine,
// UpdateLine, DeleteLine and the penalty deletions) run inside a single
// transaction and recompute the header totals from the live line set before
// committing, so the gross/deduction/net invariant holds after every call.
type PayrollRepository interface {
	// ReplaceDraft upserts the header keyed by (user, year, month), forcing
	// status back to draft, deletes every existing detail line and inserts
	// the given set. All in one transaction.
	ReplaceDraft(ctx context.Context, record SalaryRecord, lines []DetailLine) (SalaryRecord, error)

	GetRecordByID(ctx context.Context, id string) (SalaryRecord, error)
	GetRecordByUserPeriod(ctx context.Context, userID string, year, month int) (SalaryRecord, error)
	ListRecords(ctx context.Context, filter ListRecordsFilter) ([]SalaryRecord, int64, error)
	SetStatus(ctx context.Context, id string, status RecordStatus) error

	GetLinesByRecord(ctx context.Context, recordID string) ([]DetailLine, error)
	GetLineByID(ctx context.Context, id string) (DetailLine, error)
	AddLine(ctx context.Context, line DetailLine) (DetailLine, error)
	UpdateLine(ctx context.Context, req UpdateLineRequest) error
	DeleteLine(ctx context.Context, id string) error

	DeletePenaltyLines(ctx context.Context, recordID, codePrefix string) (int64, error)
	DeletePenaltyLineByDate(ctx context.Context, recordID, codePrefix string, date time.Time) (int64, error)
	DeletePenaltyLinesInRange(ctx context.Context, recordID, codePrefix string, from, to time.Time) (int64, error)

	GetUserComponents(ctx context.Context, userID string) ([]UserComponentValue, error)
}
