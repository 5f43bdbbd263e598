package service

import (
	"context"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

// HolidayService is the data-access surface for holiday records.
type HolidayService interface {
	List(ctx context.Context, term string) ([]domain.Holiday, error)
	Get(ctx context.Context, id int64) (*domain.Holiday, error)
	Create(ctx context.Context, name, date string) (domain.CreateOutcome, error)
	Update(ctx context.Context, id int64, name, date string) (domain.MutationOutcome, error)
	Delete(ctx context.Context, id int64) (domain.MutationOutcome, error)
}

type holidayService struct {
	holidays repository.HolidayRepository
}

func NewHolidayService(holidays repository.HolidayRepository) HolidayService {
	return &holidayService{holidays: holidays}
}

func (s *holidayService) List(ctx context.Context, term string) ([]domain.Holiday, error) {
	return s.holidays.List(ctx, term)
}

func (s *holidayService) Get(ctx context.Context, id int64) (*domain.Holiday, error) {
	return s.holidays.Get(ctx, id)
}

func (s *holidayService) Create(ctx context.Context, name, date string) (domain.CreateOutcome, error) {
	id, err := s.holidays.Insert(ctx, &domain.Holiday{
		Name: name,
		Date: date,
	})
	if err != nil {
		return domain.CreateOutcome{}, err
	}
	return domain.CreateOutcome{Success: true, ID: id, Message: "Holiday created successfully"}, nil
}

func (s *holidayService) Update(ctx context.Context, id int64, name, date string) (domain.MutationOutcome, error) {
	aff, err := s.holidays.Update(ctx, id, name, date)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "No changes made or holiday not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Holiday updated successfully"}, nil
}

func (s *holidayService) Delete(ctx context.Context, id int64) (domain.MutationOutcome, error) {
	aff, err := s.holidays.Delete(ctx, id)
	if err != nil {
		return domain.MutationOutcome{}, err
	}
	if aff == 0 {
		return domain.MutationOutcome{Success: false, Message: "Holiday not found"}, nil
	}
	return domain.MutationOutcome{Success: true, Message: "Holiday deleted successfully"}, nil
}
