package service

import (
	"context"
	"strings"

	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// DepartmentService manages departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
}

// DepartmentCreateInput describes department creation payload.
type DepartmentCreateInput struct {
	DepartmentCode string
	DepartmentName string
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// CreateDepartment registers a department, rejecting duplicate codes.
func (s *DepartmentService) CreateDepartment(ctx context.Context, input DepartmentCreateInput) (*domain.Department, error) {
	code := strings.TrimSpace(input.DepartmentCode)
	name := strings.TrimSpace(input.DepartmentName)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("department_code and department_name required", nil)
	}

	existing, err := s.departments.GetByCode(ctx, code)
	if err == nil && existing != nil {
		return nil, apperrors.NewConflict("department code already exists",
			map[string]any{"department_code": code})
	}

	dept := &domain.Department{
		DepartmentCode: code,
		DepartmentName: name,
		IsActive:       true,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// GetDepartment fetches a department by id.
func (s *DepartmentService) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// ListDepartments returns all active departments.
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}
