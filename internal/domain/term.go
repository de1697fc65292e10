package domain

import "time"

// TermStatus enumerates lifecycle states for academic terms.
type TermStatus string

const (
	TermStatusActive   TermStatus = "Active"
	TermStatusUpcoming TermStatus = "Upcoming"
	TermStatusArchived TermStatus = "Archived"
)

// Term represents an academic term. Exactly one term holds the Active status
// at any time; its academic year is stamped onto every room mutation.
type Term struct {
	ID           string
	AcademicYear string
	Name         string
	Status       TermStatus
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
