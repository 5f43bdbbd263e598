package repository

import (
	"context"

	"attendance-server/internal/domain"
)

// UserRepository defines persistence operations for User records.
//
// Get and List return projections without the password column. GetByUsername
// (exact match) and LookupByUsername (case-insensitive match) return the full
// record and exist only for authentication flows. Absent rows are reported as
// (nil, nil), not errors.
type UserRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, id int64, displayName, biometricData, image string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	LookupByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
