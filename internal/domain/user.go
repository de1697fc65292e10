package domain

import "time"

// Role enumerates directory roles.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleFaculty       Role = "Faculty"
)

// EmploymentType enumerates staff employment arrangements.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
)

// User is a directory record referenced by history entries through UpdatedBy.
// The room core never validates existence of the referenced user.
type User struct {
	ID             string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	PasswordHash   string
	Role           Role
	DepartmentID   *string
	EmploymentType EmploymentType
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName renders the directory name used when projecting history authors.
func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
