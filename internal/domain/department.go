package domain

import "time"

// Department represents an academic organizational unit. Rooms reference
// departments by id only; the relation is a display-time lookup, not
// ownership.
type Department struct {
	ID             string
	DepartmentCode string
	DepartmentName string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
