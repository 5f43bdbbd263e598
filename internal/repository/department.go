package repository

import (
	"context"

	"attendance-server/internal/domain"
)

// DepartmentRepository defines persistence operations for Department records.
// List with an empty term returns the full set; a non-empty term filters by a
// substring match on name or department head.
type DepartmentRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, department *domain.Department) (int64, error)
	Update(ctx context.Context, id int64, name, departmentHead string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context, term string) ([]domain.Department, error)
}
