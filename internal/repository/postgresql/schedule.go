package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/schedule"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.date, sc.id, sc.name,
			   COALESCE(to_char(sc.time_start, 'HH24:MI:SS'), ''),
			   COALESCE(to_char(sc.time_end, 'HH24:MI:SS'), '')
		FROM schedule_assignments sa
		JOIN schedule_categories sc ON sa.category_id = sc.id
		WHERE sa.user_id = $1 AND sa.date BETWEEN $2 AND $3
		ORDER BY sa.date, sa.created_at
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []schedule.Entry
	for rows.Next() {
		var e schedule.Entry
		if err := rows.Scan(&e.Date, &e.CategoryID, &e.CategoryName, &e.TimeStart, &e.TimeEnd); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
