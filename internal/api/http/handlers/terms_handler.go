package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academic-admin-service/internal/api/dto"
	"github.com/spec-kit/academic-admin-service/internal/service"
	apperrors "github.com/spec-kit/academic-admin-service/pkg/util/errorutil"
)

// TermsHandler exposes academic term endpoints.
type TermsHandler struct {
	service *service.TermService
}

// NewTermsHandler constructs handler.
func NewTermsHandler(termService *service.TermService) *TermsHandler {
	return &TermsHandler{service: termService}
}

// CreateTerm POST /terms.
func (h *TermsHandler) CreateTerm(c *fiber.Ctx) error {
	var req dto.CreateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.AcademicYear) == "" || strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("academic_year and name required", nil)
	}

	term, err := h.service.CreateTerm(c.Context(), service.TermCreateInput{
		AcademicYear: req.AcademicYear,
		Name:         req.Name,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTermResponse(term)})
}

// ListTerms GET /terms.
func (h *TermsHandler) ListTerms(c *fiber.Ctx) error {
	terms, err := h.service.ListTerms(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTermResponses(terms)})
}

// GetActiveTerm GET /terms/active.
func (h *TermsHandler) GetActiveTerm(c *fiber.Ctx) error {
	term, err := h.service.GetActiveTerm(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTermResponse(term)})
}

// ActivateTerm POST /terms/:id/activate.
func (h *TermsHandler) ActivateTerm(c *fiber.Ctx) error {
	term, err := h.service.ActivateTerm(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTermResponse(term)})
}
