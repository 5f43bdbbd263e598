package domain

import "time"

// Department groups employees. Names are not unique.
type Department struct {
	ID             int64
	Name           string
	DepartmentHead string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
