package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetApprovedShiftChanges(ctx context.Context, userID string, from, to time.Time) ([]request.ShiftChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date,
			   to_char(start_time, 'HH24:MI:SS'),
			   to_char(end_time, 'HH24:MI:SS')
		FROM employee_requests
		WHERE user_id = $1 AND type = 'shift_change' AND status = 'approved'
			AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get shift change requests: %w", err)
	}
	defer rows.Close()

	var requests []request.ShiftChange
	for rows.Next() {
		var sc request.ShiftChange
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.Date, &sc.StartTime, &sc.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift change request: %w", err)
		}
		requests = append(requests, sc)
	}

	return requests, nil
}

func (r *requestRepository) GetApprovedOvertime(ctx context.Context, userID string, from, to time.Time) ([]request.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date,
			   to_char(start_time, 'HH24:MI:SS'),
			   to_char(end_time, 'HH24:MI:SS')
		FROM employee_requests
		WHERE user_id = $1 AND type = 'overtime' AND status = 'approved'
			AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Overtime
	for rows.Next() {
		var ot request.Overtime
		if err := rows.Scan(&ot.ID, &ot.UserID, &ot.Date, &ot.StartTime, &ot.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, ot)
	}

	return requests, nil
}

func (r *requestRepository) GetApprovedTimeOff(ctx context.Context, userID string, from, to time.Time) ([]request.TimeOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date
		FROM employee_requests
		WHERE user_id = $1 AND type = 'time_off' AND status = 'approved'
			AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get time off requests: %w", err)
	}
	defer rows.Close()

	var requests []request.TimeOff
	for rows.Next() {
		var toff request.TimeOff
		if err := rows.Scan(&toff.ID, &toff.UserID, &toff.StartDate, &toff.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan time off request: %w", err)
		}
		requests = append(requests, toff)
	}

	return requests, nil
}
