package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academic-admin-service/internal/api/dto"
	"github.com/spec-kit/academic-admin-service/internal/domain"
	"github.com/spec-kit/academic-admin-service/internal/service"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// UsersHandler exposes the directory endpoints referenced by room history.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// CreateUser POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UserCreateInput{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           domain.Role(req.Role),
		EmploymentType: domain.EmploymentType(req.EmploymentType),
	}
	if req.DepartmentID != "" {
		input.DepartmentID = &req.DepartmentID
	}

	user, err := h.service.CreateUser(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}
