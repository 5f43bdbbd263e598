package domain

import "time"

// Holiday is a named calendar date. The date is kept as text in the store.
type Holiday struct {
	ID        int64
	Name      string
	Date      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
