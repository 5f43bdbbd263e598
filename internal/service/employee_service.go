package service

import (
	"context"
	"errors"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

// EmployeeParams carries the full employee payload; create and update accept
// the same shape.
type EmployeeParams struct {
	DepartmentID  *int64
	UniqueID      string
	Lastname      string
	Firstname     string
	Middlename    string
	DisplayName   string
	Age           *int
	Gender        string
	BiometricData string
	Image         []byte
}

// EmployeeService is the data-access surface for employee records.
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Employee, error)
	Search(ctx context.Context, term string) ([]domain.Employee, error)
	Create(ctx context.Context, params EmployeeParams) (domain.CreateOutcome, error)
	Update(ctx context.Context, id int64, params EmployeeParams) (domain.MutationOutcome, error)
	Delete(ctx context.Context, id int64) (domain.MutationOutcome, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.Get(ctx, id)
}

func (s *employeeService) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Employee, error) {
	return s.employees.GetByUniqueID(ctx, uniqueID)
}

func (s *employeeService) Search(ctx context.Context, term string) ([]domain.Employee, error) {
	return s.employees.Search(ctx, term)
}

func (s *employeeService) Create(ctx context.Context, params EmployeeParams) (domain.CreateOutcome, error) {
	employee := employeeFromParams(params)

	id, err := s.employees.Insert(ctx, employee)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.CreateOutcome{Success: false, Message: "Employee ID already exists"}, nil
		}
		return domain.CreateOutcome{}, err
	}

	return domain.CreateOutcome{Success: true, ID: id, Message: "Employee created successfully"}, nil
}

// Update rewrites every business field; a unique_id collision with another
// employee is recovered into the same structured outcome as on create.
func (s *employeeService) Update(ctx context.Context, id int64, params EmployeeParams) (domain.MutationOutcome, error) {
	aff, err := s.employees.Update(ctx, id, employeeFromParams(params))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.MutationOutcome{Success: false, Message: "Employee ID already exists"}, nil
		}
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "No changes made or employee not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Employee updated successfully"}, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) (domain.MutationOutcome, error) {
	aff, err := s.employees.Delete(ctx, id)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "Employee not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Employee deleted successfully"}, nil
}

func employeeFromParams(params EmployeeParams) *domain.Employee {
	return &domain.Employee{
		DepartmentID:  params.DepartmentID,
		UniqueID:      params.UniqueID,
		Lastname:      params.Lastname,
		Firstname:     params.Firstname,
		Middlename:    params.Middlename,
		DisplayName:   params.DisplayName,
		Age:           params.Age,
		Gender:        params.Gender,
		BiometricData: params.BiometricData,
		Image:         params.Image,
	}
}
