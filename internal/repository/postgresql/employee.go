package postgresql

import (
	"context"
	"fmt"

	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, employee_code, basic_salary, late_tolerance_minutes,
			   is_active, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.EmployeeCode, &e.BasicSalary, &e.LateToleranceMinutes,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetLateToleranceMinutes(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT late_tolerance_minutes FROM users WHERE id = $1 AND deleted_at IS NULL`

	var minutes int
	err := q.QueryRow(ctx, query, id).Scan(&minutes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, employee.ErrEmployeeNotFound
		}
		return 0, fmt.Errorf("failed to get late tolerance: %w", err)
	}

	return minutes, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, employee_code, basic_salary, late_tolerance_minutes,
			   is_active, created_at, updated_at
		FROM users
		WHERE is_active = true AND deleted_at IS NULL
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.EmployeeCode, &e.BasicSalary, &e.LateToleranceMinutes,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}
