package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

// Department names carry no uniqueness constraint.
const createDepartmentsTable = `
CREATE TABLE IF NOT EXISTS departments (
	department_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	department_head TEXT NOT NULL,
	date_created DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type DepartmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) repository.DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDepartmentsTable); err != nil {
		return fmt.Errorf("create departments table: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) Insert(ctx context.Context, department *domain.Department) (int64, error) {
	now := time.Now().UTC()
	department.CreatedAt = now
	department.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO departments (name, department_head, date_created, updated_at)
VALUES (?, ?, ?, ?)`,
		department.Name,
		department.DepartmentHead,
		department.CreatedAt,
		department.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert department: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("department last insert id: %w", err)
	}
	department.ID = id
	return id, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id int64, name, departmentHead string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE departments
SET name = ?, department_head = ?, updated_at = ?
WHERE department_id = ?`,
		name,
		departmentHead,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("update department: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("department update rows affected: %w", err)
	}
	return aff, nil
}

// Delete removes the department only; employees referencing it keep their
// now-orphaned department_id.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE department_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete department: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("department delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *DepartmentRepository) Get(ctx context.Context, id int64) (*domain.Department, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT department_id, name, department_head, date_created, updated_at
FROM departments
WHERE department_id = ?`,
		id,
	)
	return scanDepartment(row)
}

func (r *DepartmentRepository) List(ctx context.Context, term string) ([]domain.Department, error) {
	query := `
SELECT department_id, name, department_head, date_created, updated_at
FROM departments`
	var args []any
	if term != "" {
		query += `
WHERE name LIKE ? OR department_head LIKE ?`
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, *department)
	}

	return departments, rows.Err()
}

func scanDepartment(row interface {
	Scan(dest ...any) error
}) (*domain.Department, error) {
	var department domain.Department
	if err := row.Scan(
		&department.ID,
		&department.Name,
		&department.DepartmentHead,
		&department.CreatedAt,
		&department.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan department: %w", err)
	}
	return &department, nil
}
