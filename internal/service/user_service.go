package service

import (
	"context"
	"strings"

	"github.com/spec-kit/academic-admin-service/internal/auth"
	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// UserService manages the directory referenced by room history entries.
// Credentials are hashed on write and never leave the service in any payload.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserCreateInput describes directory record creation.
type UserCreateInput struct {
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	Password       string
	Role           domain.Role
	DepartmentID   *string
	EmploymentType domain.EmploymentType
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUser registers a directory record, rejecting duplicate emails.
// Administrators carry no department and are always full-time.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.LastName == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email, last_name, password required", nil)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:      strings.TrimSpace(input.FirstName),
		MiddleName:     strings.TrimSpace(input.MiddleName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          email,
		PasswordHash:   hash,
		Role:           input.Role,
		DepartmentID:   input.DepartmentID,
		EmploymentType: input.EmploymentType,
	}
	if user.Role == domain.RoleAdministrator {
		user.DepartmentID = nil
		user.EmploymentType = domain.EmploymentFullTime
	}
	if user.EmploymentType == "" {
		user.EmploymentType = domain.EmploymentFullTime
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetUser fetches a directory record by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns all directory records.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
