package dto

import (
	"github.com/spec-kit/academic-admin-service/internal/domain"
)

// CreateUserRequest payload. The password never appears in any response or
// log line.
type CreateUserRequest struct {
	FirstName      string `json:"first_name" form:"first_name"`
	MiddleName     string `json:"middle_name" form:"middle_name"`
	LastName       string `json:"last_name" form:"last_name"`
	Email          string `json:"email" form:"email"`
	Password       string `json:"password" form:"password"`
	Role           string `json:"role" form:"role"`
	DepartmentID   string `json:"department_id" form:"department_id"`
	EmploymentType string `json:"employment_type" form:"employment_type"`
}

// UserResponse is the transport form of a directory record. It deliberately
// has no field for the password hash.
type UserResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	MiddleName     string  `json:"middle_name,omitempty"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	DepartmentID   *string `json:"department_id"`
	EmploymentType string  `json:"employment_type"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// NewUserResponse projects a directory record.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		MiddleName:     user.MiddleName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           string(user.Role),
		DepartmentID:   user.DepartmentID,
		EmploymentType: string(user.EmploymentType),
		IsActive:       user.IsActive,
		CreatedAt:      FormatTimestamp(user.CreatedAt),
		UpdatedAt:      FormatTimestamp(user.UpdatedAt),
	}
}

// NewUserResponses projects a listing in order.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
