package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) ReplaceDraft(ctx context.Context, record payroll.SalaryRecord, lines []payroll.DetailLine) (payroll.SalaryRecord, error) {
	var stored payroll.SalaryRecord

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		auditJSON, err := json.Marshal(record.Audit)
		if err != nil {
			return fmt.Errorf("failed to marshal generation audit: %w", err)
		}

		upsert := `
			INSERT INTO salary_records (
				user_id, period_year, period_month, status, basic_salary,
				working_days, present_days, gross_earnings, total_deductions, net_pay, audit
			)
			VALUES ($1, $2, $3, 'draft', $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id, period_year, period_month) DO UPDATE SET
				status = 'draft',
				basic_salary = EXCLUDED.basic_salary,
				working_days = EXCLUDED.working_days,
				present_days = EXCLUDED.present_days,
				gross_earnings = EXCLUDED.gross_earnings,
				total_deductions = EXCLUDED.total_deductions,
				net_pay = EXCLUDED.net_pay,
				audit = EXCLUDED.audit,
				updated_at = NOW()
			RETURNING id, user_id, period_year, period_month, status, basic_salary,
					  working_days, present_days, gross_earnings, total_deductions,
					  net_pay, created_at, updated_at
		`

		err = q.QueryRow(ctx, upsert,
			record.UserID, record.PeriodYear, record.PeriodMonth, record.BasicSalary,
			record.WorkingDays, record.PresentDays, record.GrossEarnings,
			record.TotalDeductions, record.NetPay, auditJSON,
		).Scan(
			&stored.ID, &stored.UserID, &stored.PeriodYear, &stored.PeriodMonth,
			&stored.Status, &stored.BasicSalary, &stored.WorkingDays, &stored.PresentDays,
			&stored.GrossEarnings, &stored.TotalDeductions, &stored.NetPay,
			&stored.CreatedAt, &stored.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert salary record: %w", err)
		}
		stored.Audit = record.Audit

		if _, err := q.Exec(ctx, `DELETE FROM salary_detail_lines WHERE record_id = $1`, stored.ID); err != nil {
			return fmt.Errorf("failed to delete existing detail lines: %w", err)
		}

		if len(lines) > 0 {
			insert := `
				INSERT INTO salary_detail_lines (
					id, record_id, code, label, type, quantity, rate, amount, editable, sort_order
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`

			batch := &pgx.Batch{}
			for _, line := range lines {
				id := line.ID
				if id == "" {
					id = uuid.NewString()
				}
				batch.Queue(insert,
					id, stored.ID, line.Code, line.Label, line.Type,
					line.Quantity, line.Rate, line.Amount, line.Editable, line.SortOrder,
				)
			}

			br := q.SendBatch(ctx, batch)
			for range lines {
				if _, err := br.Exec(); err != nil {
					_ = br.Close()
					return fmt.Errorf("failed to insert detail line: %w", err)
				}
			}
			if err := br.Close(); err != nil {
				return fmt.Errorf("failed to close batch: %w", err)
			}
		}

		return recalcTotals(ctx, q, stored.ID, &stored)
	})
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	return stored, nil
}

// recalcTotals recomputes the header aggregates from the live line set. Runs
// inside the caller's transaction.
func recalcTotals(ctx context.Context, q database.Querier, recordID string, into *payroll.SalaryRecord) error {
	query := `
		WITH sums AS (
			SELECT
				COALESCE(SUM(amount) FILTER (WHERE type = 'earning'), 0) AS gross,
				COALESCE(SUM(amount) FILTER (WHERE type = 'deduction'), 0) AS deductions
			FROM salary_detail_lines
			WHERE record_id = $1
		)
		UPDATE salary_records sr SET
			gross_earnings = s.gross,
			total_deductions = s.deductions,
			net_pay = s.gross - s.deductions,
			updated_at = NOW()
		FROM sums s
		WHERE sr.id = $1
		RETURNING sr.gross_earnings, sr.total_deductions, sr.net_pay
	`

	var rec payroll.SalaryRecord
	if into == nil {
		into = &rec
	}
	err := q.QueryRow(ctx, query, recordID).Scan(&into.GrossEarnings, &into.TotalDeductions, &into.NetPay)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrSalaryRecordNotFound
		}
		return fmt.Errorf("failed to recalculate record totals: %w", err)
	}

	return nil
}

const recordColumns = `
	sr.id, sr.user_id, sr.period_year, sr.period_month, sr.status, sr.basic_salary,
	sr.working_days, sr.present_days, sr.gross_earnings, sr.total_deductions,
	sr.net_pay, sr.audit, sr.created_at, sr.updated_at, u.full_name, u.employee_code
`

func scanRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var rec payroll.SalaryRecord
	var auditJSON []byte

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.PeriodYear, &rec.PeriodMonth, &rec.Status,
		&rec.BasicSalary, &rec.WorkingDays, &rec.PresentDays, &rec.GrossEarnings,
		&rec.TotalDeductions, &rec.NetPay, &auditJSON, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserName, &rec.EmployeeCode,
	)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	if len(auditJSON) > 0 {
		var audit payroll.GenerationAudit
		if err := json.Unmarshal(auditJSON, &audit); err != nil {
			return payroll.SalaryRecord{}, fmt.Errorf("failed to unmarshal generation audit: %w", err)
		}
		rec.Audit = &audit
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM salary_records sr
		JOIN users u ON sr.user_id = u.id
		WHERE sr.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByUserPeriod(ctx context.Context, userID string, year, month int) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM salary_records sr
		JOIN users u ON sr.user_id = u.id
		WHERE sr.user_id = $1 AND sr.period_year = $2 AND sr.period_month = $3
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, filter payroll.ListRecordsFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND sr.user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND sr.period_year = $%d", argPos)
		args = append(args, *filter.Year)
		argPos++
	}
	if filter.Month != nil {
		where += fmt.Sprintf(" AND sr.period_month = $%d", argPos)
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND sr.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM salary_records sr` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := `
		SELECT ` + recordColumns + `
		FROM salary_records sr
		JOIN users u ON sr.user_id = u.id
	` + where + fmt.Sprintf(`
		ORDER BY sr.period_year DESC, sr.period_month DESC, u.full_name
		LIMIT $%d OFFSET $%d
	`, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

func (r *payrollRepository) SetStatus(ctx context.Context, id string, status payroll.RecordStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE salary_records SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING id`

	var returned string
	if err := q.QueryRow(ctx, query, id, status).Scan(&returned); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrSalaryRecordNotFound
		}
		return fmt.Errorf("failed to update record status: %w", err)
	}

	return nil
}

const lineColumns = `
	id, record_id, code, label, type, quantity, rate, amount, editable, sort_order,
	created_at, updated_at
`

func scanLine(row pgx.Row) (payroll.DetailLine, error) {
	var line payroll.DetailLine
	err := row.Scan(
		&line.ID, &line.RecordID, &line.Code, &line.Label, &line.Type,
		&line.Quantity, &line.Rate, &line.Amount, &line.Editable, &line.SortOrder,
		&line.CreatedAt, &line.UpdatedAt,
	)
	return line, err
}

func (r *payrollRepository) GetLinesByRecord(ctx context.Context, recordID string) ([]payroll.DetailLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineColumns + `
		FROM salary_detail_lines
		WHERE record_id = $1
		ORDER BY sort_order, code
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get detail lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.DetailLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (r *payrollRepository) GetLineByID(ctx context.Context, id string) (payroll.DetailLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineColumns + `
		FROM salary_detail_lines
		WHERE id = $1
	`

	line, err := scanLine(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.DetailLine{}, payroll.ErrDetailLineNotFound
		}
		return payroll.DetailLine{}, fmt.Errorf("failed to get detail line: %w", err)
	}

	return line, nil
}

func (r *payrollRepository) AddLine(ctx context.Context, line payroll.DetailLine) (payroll.DetailLine, error) {
	var stored payroll.DetailLine

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		id := line.ID
		if id == "" {
			id = uuid.NewString()
		}

		query := `
			INSERT INTO salary_detail_lines (
				id, record_id, code, label, type, quantity, rate, amount, editable, sort_order
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING ` + lineColumns

		var err error
		stored, err = scanLine(q.QueryRow(ctx, query,
			id, line.RecordID, line.Code, line.Label, line.Type,
			line.Quantity, line.Rate, line.Amount, line.Editable, line.SortOrder,
		))
		if err != nil {
			return fmt.Errorf("failed to insert detail line: %w", err)
		}

		return recalcTotals(ctx, q, stored.RecordID, nil)
	})
	if err != nil {
		return payroll.DetailLine{}, err
	}

	return stored, nil
}

func (r *payrollRepository) UpdateLine(ctx context.Context, req payroll.UpdateLineRequest) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		setParts := []string{"updated_at = NOW()"}
		args := []interface{}{req.ID}
		argPos := 2

		if req.Label != nil {
			setParts = append(setParts, fmt.Sprintf("label = $%d", argPos))
			args = append(args, *req.Label)
			argPos++
		}
		if req.Quantity != nil {
			setParts = append(setParts, fmt.Sprintf("quantity = $%d", argPos))
			args = append(args, *req.Quantity)
			argPos++
		}
		if req.Rate != nil {
			setParts = append(setParts, fmt.Sprintf("rate = $%d", argPos))
			args = append(args, *req.Rate)
			argPos++
		}
		if req.Amount != nil {
			setParts = append(setParts, fmt.Sprintf("amount = $%d", argPos))
			args = append(args, *req.Amount)
			argPos++
		}

		query := "UPDATE salary_detail_lines SET "
		for i, part := range setParts {
			if i > 0 {
				query += ", "
			}
			query += part
		}
		query += " WHERE id = $1 RETURNING record_id"

		var recordID string
		if err := q.QueryRow(ctx, query, args...).Scan(&recordID); err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrDetailLineNotFound
			}
			return fmt.Errorf("failed to update detail line: %w", err)
		}

		return recalcTotals(ctx, q, recordID, nil)
	})
}

func (r *payrollRepository) DeleteLine(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var recordID string
		err := q.QueryRow(ctx, `DELETE FROM salary_detail_lines WHERE id = $1 RETURNING record_id`, id).Scan(&recordID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrDetailLineNotFound
			}
			return fmt.Errorf("failed to delete detail line: %w", err)
		}

		return recalcTotals(ctx, q, recordID, nil)
	})
}

func (r *payrollRepository) DeletePenaltyLines(ctx context.Context, recordID, codePrefix string) (int64, error) {
	var deleted int64

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `DELETE FROM salary_detail_lines WHERE record_id = $1 AND code LIKE $2 || '%'`

		tag, err := q.Exec(ctx, query, recordID, codePrefix)
		if err != nil {
			return fmt.Errorf("failed to delete penalty lines: %w", err)
		}
		deleted = tag.RowsAffected()

		return recalcTotals(ctx, q, recordID, nil)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *payrollRepository) DeletePenaltyLineByDate(ctx context.Context, recordID, codePrefix string, date time.Time) (int64, error) {
	var deleted int64

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `DELETE FROM salary_detail_lines WHERE record_id = $1 AND code = $2`

		tag, err := q.Exec(ctx, query, recordID, codePrefix+date.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("failed to delete penalty line: %w", err)
		}
		deleted = tag.RowsAffected()

		return recalcTotals(ctx, q, recordID, nil)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *payrollRepository) DeletePenaltyLinesInRange(ctx context.Context, recordID, codePrefix string, from, to time.Time) (int64, error) {
	var deleted int64

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			DELETE FROM salary_detail_lines
			WHERE record_id = $1 AND code LIKE $2 || '%'
				AND split_part(code, ':', 2)::date BETWEEN $3 AND $4
		`

		tag, err := q.Exec(ctx, query, recordID, codePrefix,
			from.Format("2006-01-02"), to.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("failed to delete penalty lines in range: %w", err)
		}
		deleted = tag.RowsAffected()

		return recalcTotals(ctx, q, recordID, nil)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *payrollRepository) GetUserComponents(ctx context.Context, userID string) ([]payroll.UserComponentValue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT upc.id, upc.user_id, pc.id, pc.name, pc.type, upc.amount
		FROM user_payroll_components upc
		JOIN payroll_components pc ON upc.component_id = pc.id
		WHERE upc.user_id = $1 AND upc.deleted_at IS NULL
		ORDER BY pc.type, pc.name
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user payroll components: %w", err)
	}
	defer rows.Close()

	var components []payroll.UserComponentValue
	for rows.Next() {
		var c payroll.UserComponentValue
		if err := rows.Scan(&c.ID, &c.UserID, &c.ComponentID, &c.ComponentName, &c.Type, &c.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan user payroll component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}
