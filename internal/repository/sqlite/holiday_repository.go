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

const createHolidaysTable = `
CREATE TABLE IF NOT EXISTS holidays (
	holiday_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	date TEXT NOT NULL,
	date_created DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type HolidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) repository.HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHolidaysTable); err != nil {
		return fmt.Errorf("create holidays table: %w", err)
	}
	return nil
}

func (r *HolidayRepository) Insert(ctx context.Context, holiday *domain.Holiday) (int64, error) {
	now := time.Now().UTC()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO holidays (name, date, date_created, updated_at)
VALUES (?, ?, ?, ?)`,
		holiday.Name,
		holiday.Date,
		holiday.CreatedAt,
		holiday.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert holiday: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("holiday last insert id: %w", err)
	}
	holiday.ID = id
	return id, nil
}

func (r *HolidayRepository) Update(ctx context.Context, id int64, name, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE holidays
SET name = ?, date = ?, updated_at = ?
WHERE holiday_id = ?`,
		name,
		date,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("update holiday: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("holiday update rows affected: %w", err)
	}
	return aff, nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE holiday_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete holiday: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("holiday delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *HolidayRepository) Get(ctx context.Context, id int64) (*domain.Holiday, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT holiday_id, name, date, date_created, updated_at
FROM holidays
WHERE holiday_id = ?`,
		id,
	)
	return scanHoliday(row)
}

func (r *HolidayRepository) List(ctx context.Context, term string) ([]domain.Holiday, error) {
	query := `
SELECT holiday_id, name, date, date_created, updated_at
FROM holidays`
	var args []any
	if term != "" {
		query += `
WHERE name LIKE ?`
		args = append(args, "%"+term+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.Holiday
	for rows.Next() {
		holiday, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, *holiday)
	}

	return holidays, rows.Err()
}

func scanHoliday(row interface {
	Scan(dest ...any) error
}) (*domain.Holiday, error) {
	var holiday domain.Holiday
	if err := row.Scan(
		&holiday.ID,
		&holiday.Name,
		&holiday.Date,
		&holiday.CreatedAt,
		&holiday.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan holiday: %w", err)
	}
	return &holiday, nil
}
