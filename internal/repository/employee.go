package repository

import (
	"context"

	"attendance-server/internal/domain"
)

// EmployeeRepository defines persistence operations for Employee records.
// Insert and Update return ErrDuplicate on a unique_id collision. List and
// Search order results by lastname ascending. Absent rows are (nil, nil).
type EmployeeRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, employee *domain.Employee) (int64, error)
	Update(ctx context.Context, id int64, employee *domain.Employee) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Search(ctx context.Context, term string) ([]domain.Employee, error)
}
