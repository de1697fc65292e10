package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academic-admin-service/internal/api/dto"
	"github.com/spec-kit/academic-admin-service/internal/auth"
	"github.com/spec-kit/academic-admin-service/internal/service"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// RoomsHandler exposes the room lifecycle endpoints.
type RoomsHandler struct {
	service *service.RoomService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(roomService *service.RoomService) *RoomsHandler {
	return &RoomsHandler{service: roomService}
}

// CreateRoom POST /rooms. Accepts JSON or form-encoded bodies; both are
// normalized to the same field set before reaching the service.
func (h *RoomsHandler) CreateRoom(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RoomCode) == "" {
		return apperrors.NewValidationError("room_code required", nil)
	}

	room, err := h.service.ProcessRoomCreation(c.Context(), req.ToInput(), actor.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRoomResponse(room, nil)})
}

// ListRooms GET /rooms. With ?department=<id> (or department=none) the
// listing is scoped to a department bucket; otherwise all active rooms.
func (h *RoomsHandler) ListRooms(c *fiber.Ctx) error {
	if dept := strings.TrimSpace(c.Query("department")); dept != "" {
		var departmentID *string
		if !strings.EqualFold(dept, "none") {
			departmentID = &dept
		}
		rooms, err := h.service.ListRoomsByDepartment(c.Context(), departmentID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
	}

	rooms, err := h.service.ListActiveRooms(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponses(rooms)})
}

// GetRoom GET /rooms/:code. History authors are resolved to display names
// for the detail view.
func (h *RoomsHandler) GetRoom(c *fiber.Ctx) error {
	room, authorNames, err := h.service.GetRoomByCode(c.Context(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room, authorNames)})
}

// UpdateRoom PATCH /rooms/:code.
func (h *RoomsHandler) UpdateRoom(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	room, err := h.service.ProcessRoomUpdate(c.Context(), c.Params("code"), req.ToInput(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room, nil)})
}

// DeleteRoom DELETE /rooms/:code. Soft delete: the room flips inactive and
// remains reactivatable.
func (h *RoomsHandler) DeleteRoom(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	room, err := h.service.ProcessRoomDeletion(c.Context(), c.Params("code"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room, nil)})
}
