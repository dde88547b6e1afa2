package payroll

import "context"

// PayrollService is the draft-generation engine surface.
type PayrollService interface {
	// GenerateDraft recomputes one user's draft for a period and fully
	// replaces any prior detail lines. Idempotent for unchanged inputs.
	GenerateDraft(ctx context.Context, req GenerateDraftRequest) (RecordResponse, error)
	// GenerateAll runs GenerateDraft for every active user. Per-user
	// failures are reported in the response; the batch always completes.
	GenerateAll(ctx context.Context, req GenerateAllRequest) (GenerateAllResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter ListRecordsFilter) (ListRecordsResponse, error)
	SetStatus(ctx context.Context, req SetStatusRequest) (RecordResponse, error)

	AddLine(ctx context.Context, req AddLineRequest) (RecordResponse, error)
	UpdateLine(ctx context.Context, req UpdateLineRequest) (RecordResponse, error)
	DeleteLine(ctx context.Context, lineID string) (RecordResponse, error)
	DeletePenaltyLines(ctx context.Context, req DeletePenaltyLinesRequest) (RecordResponse, error)

	ListUserComponents(ctx context.Context, userID string) ([]UserComponentResponse, error)
}
