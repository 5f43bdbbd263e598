package service

import (
	"context"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

// DepartmentService is the data-access surface for department records.
// Departments carry no uniqueness constraint, so create and update never need
// a collision branch.
type DepartmentService interface {
	List(ctx context.Context, term string) ([]domain.Department, error)
	Get(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, name, departmentHead string) (domain.CreateOutcome, error)
	Update(ctx context.Context, id int64, name, departmentHead string) (domain.MutationOutcome, error)
	Delete(ctx context.Context, id int64) (domain.MutationOutcome, error)
}

type departmentService struct {
	departments repository.DepartmentRepository
}

func NewDepartmentService(departments repository.DepartmentRepository) DepartmentService {
	return &departmentService{departments: departments}
}

func (s *departmentService) List(ctx context.Context, term string) ([]domain.Department, error) {
	return s.departments.List(ctx, term)
}

func (s *departmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	return s.departments.Get(ctx, id)
}

func (s *departmentService) Create(ctx context.Context, name, departmentHead string) (domain.CreateOutcome, error) {
	id, err := s.departments.Insert(ctx, &domain.Department{
		Name:           name,
		DepartmentHead: departmentHead,
	})
	if err != nil {
		return domain.CreateOutcome{}, err
	}
	return domain.CreateOutcome{Success: true, ID: id, Message: "Department created successfully"}, nil
}

func (s *departmentService) Update(ctx context.Context, id int64, name, departmentHead string) (domain.MutationOutcome, error) {
	aff, err := s.departments.Update(ctx, id, name, departmentHead)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "No changes made or department not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Department updated successfully"}, nil
}

// Delete never cascades: employees referencing the department keep their
// orphaned department_id.
func (s *departmentService) Delete(ctx context.Context, id int64) (domain.MutationOutcome, error) {
	aff, err := s.departments.Delete(ctx, id)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "Department not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Department deleted successfully"}, nil
}
