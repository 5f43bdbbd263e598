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

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	display_name TEXT NOT NULL,
	biometric_data TEXT,
	image TEXT,
	date_created DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password, display_name, biometric_data, image, date_created)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Password,
		user.DisplayName,
		nullString(user.BiometricData),
		nullString(user.Image),
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

// Update touches the mutable fields only; username and password are immutable
// after creation.
func (r *UserRepository) Update(ctx context.Context, id int64, displayName, biometricData, image string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET display_name = ?, biometric_data = ?, image = ?
WHERE user_id = ?`,
		displayName,
		nullString(biometricData),
		nullString(image),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("user update rows affected: %w", err)
	}
	return aff, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("user delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT user_id, username, display_name, image, date_created
FROM users
WHERE user_id = ?`,
		id,
	)
	return scanUserProjection(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT user_id, username, password, display_name, biometric_data, image, date_created
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

// LookupByUsername matches the username case-insensitively; the login path
// accepts "admin" for the seeded "Admin" account.
func (r *UserRepository) LookupByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT user_id, username, password, display_name, biometric_data, image, date_created
FROM users
WHERE username = ? COLLATE NOCASE`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, username, display_name, image, date_created
FROM users
ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUserProjection(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user      domain.User
		biometric sql.NullString
		image     sql.NullString
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.DisplayName,
		&biometric,
		&image,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.BiometricData = biometric.String
	user.Image = image.String
	return &user, nil
}

func scanUserProjection(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user  domain.User
		image sql.NullString
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&image,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Image = image.String
	return &user, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
