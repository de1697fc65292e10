package dto

import (
	"github.com/spec-kit/academic-admin-service/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	DepartmentCode string `json:"department_code" form:"department_code"`
	DepartmentName string `json:"department_name" form:"department_name"`
}

// DepartmentResponse is the transport form of a department.
type DepartmentResponse struct {
	ID             string `json:"id"`
	DepartmentCode string `json:"department_code"`
	DepartmentName string `json:"department_name"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewDepartmentResponse projects a department.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             dept.ID,
		DepartmentCode: dept.DepartmentCode,
		DepartmentName: dept.DepartmentName,
		IsActive:       dept.IsActive,
		CreatedAt:      FormatTimestamp(dept.CreatedAt),
		UpdatedAt:      FormatTimestamp(dept.UpdatedAt),
	}
}

// NewDepartmentResponses projects a listing in order.
func NewDepartmentResponses(depts []domain.Department) []DepartmentResponse {
	result := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, NewDepartmentResponse(&depts[i]))
	}
	return result
}
