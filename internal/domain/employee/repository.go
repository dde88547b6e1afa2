package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetLateToleranceMinutes returns the per-employee grace period. Callers
	// default to zero minutes when the lookup fails rather than aborting.
	GetLateToleranceMinutes(ctx context.Context, id string) (int, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
