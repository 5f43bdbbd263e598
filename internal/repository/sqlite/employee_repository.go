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

// No foreign key on department_id: department references are informal and
// deleting a department must leave its employees untouched.
const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
	employee_id INTEGER PRIMARY KEY AUTOINCREMENT,
	department_id INTEGER,
	unique_id TEXT NOT NULL UNIQUE,
	lastname TEXT NOT NULL,
	firstname TEXT NOT NULL,
	middlename TEXT,
	display_name TEXT NOT NULL,
	age INTEGER,
	gender TEXT,
	biometric_data TEXT,
	image BLOB,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const employeeColumns = `employee_id, department_id, unique_id, lastname, firstname, middlename, display_name, age, gender, biometric_data, image, created_at, updated_at`

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) repository.EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEmployeesTable); err != nil {
		return fmt.Errorf("create employees table: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) (int64, error) {
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO employees (department_id, unique_id, lastname, firstname, middlename, display_name, age, gender, biometric_data, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt64(employee.DepartmentID),
		employee.UniqueID,
		employee.Lastname,
		employee.Firstname,
		nullString(employee.Middlename),
		employee.DisplayName,
		nullInt(employee.Age),
		nullString(employee.Gender),
		nullString(employee.BiometricData),
		employee.Image,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert employee: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert employee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("employee last insert id: %w", err)
	}
	employee.ID = id
	return id, nil
}

// Update rewrites every business field and always refreshes updated_at; the
// rows-affected count alone reflects whether the WHERE matched.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, employee *domain.Employee) (int64, error) {
	employee.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE employees
SET department_id = ?, unique_id = ?, lastname = ?, firstname = ?, middlename = ?,
    display_name = ?, age = ?, gender = ?, biometric_data = ?, image = ?, updated_at = ?
WHERE employee_id = ?`,
		nullInt64(employee.DepartmentID),
		employee.UniqueID,
		employee.Lastname,
		employee.Firstname,
		nullString(employee.Middlename),
		employee.DisplayName,
		nullInt(employee.Age),
		nullString(employee.Gender),
		nullString(employee.BiometricData),
		employee.Image,
		employee.UpdatedAt,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("update employee: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("update employee: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("employee update rows affected: %w", err)
	}
	return aff, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete employee: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("employee delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
WHERE employee_id = ?`,
		id,
	)
	return scanEmployee(row)
}

func (r *EmployeeRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
WHERE unique_id = ?`,
		uniqueID,
	)
	return scanEmployee(row)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
ORDER BY lastname ASC`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// Search matches the term as a case-insensitive substring across the five
// searchable fields; sqlite LIKE folds ASCII case by default.
func (r *EmployeeRepository) Search(ctx context.Context, term string) ([]domain.Employee, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT `+employeeColumns+`
FROM employees
WHERE unique_id LIKE ?
   OR lastname LIKE ?
   OR firstname LIKE ?
   OR middlename LIKE ?
   OR display_name LIKE ?
ORDER BY lastname ASC`,
		pattern, pattern, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows *sql.Rows) ([]domain.Employee, error) {
	var employees []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

func scanEmployee(row interface {
	Scan(dest ...any) error
}) (*domain.Employee, error) {
	var (
		employee     domain.Employee
		departmentID sql.NullInt64
		middlename   sql.NullString
		age          sql.NullInt64
		gender       sql.NullString
		biometric    sql.NullString
	)
	if err := row.Scan(
		&employee.ID,
		&departmentID,
		&employee.UniqueID,
		&employee.Lastname,
		&employee.Firstname,
		&middlename,
		&employee.DisplayName,
		&age,
		&gender,
		&biometric,
		&employee.Image,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	if departmentID.Valid {
		v := departmentID.Int64
		employee.DepartmentID = &v
	}
	employee.Middlename = middlename.String
	employee.Gender = gender.String
	employee.BiometricData = biometric.String
	if age.Valid {
		v := int(age.Int64)
		employee.Age = &v
	}
	return &employee, nil
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
