package repository

import (
	"context"

	"attendance-server/internal/domain"
)

// HolidayRepository defines persistence operations for Holiday records.
// List with an empty term returns the full set; a non-empty term filters by a
// substring match on name.
type HolidayRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, holiday *domain.Holiday) (int64, error)
	Update(ctx context.Context, id int64, name, date string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Holiday, error)
	List(ctx context.Context, term string) ([]domain.Holiday, error)
}
