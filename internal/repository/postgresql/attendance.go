package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/attendance"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetEventsBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, recorded_at
		FROM attendance_logs
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var e attendance.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

func (r *attendanceRepository) GetApprovedManualInRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.ManualAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date,
			   COALESCE(to_char(checkin_time, 'HH24:MI:SS'), ''),
			   COALESCE(to_char(checkout_time, 'HH24:MI:SS'), ''),
			   status
		FROM manual_attendances
		WHERE user_id = $1 AND status = 'approved' AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get manual attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.ManualAttendance
	for rows.Next() {
		var m attendance.ManualAttendance
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.CheckinTime, &m.CheckoutTime, &m.Status); err != nil {
			return nil, fmt.Errorf("failed to scan manual attendance: %w", err)
		}
		records = append(records, m)
	}

	return records, nil
}
