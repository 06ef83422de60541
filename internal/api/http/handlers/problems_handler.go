package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/algo-tracker/internal/api/dto"
	"github.com/spec-kit/algo-tracker/internal/auth"
	"github.com/spec-kit/algo-tracker/internal/domain"
	"github.com/spec-kit/algo-tracker/internal/service"
	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

// ProblemsHandler exposes CRUD over the authenticated user's problem entries.
type ProblemsHandler struct {
	problems *service.ProblemService
}

// NewProblemsHandler constructs handler.
func NewProblemsHandler(problemService *service.ProblemService) *ProblemsHandler {
	return &ProblemsHandler{problems: problemService}
}

// Add handles POST /api/problems/add.
func (h *ProblemsHandler) Add(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateProblemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	entry, err := h.problems.Add(c.Context(), claims.UserID, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProblemResponse(entry)})
}

// List handles GET /api/problems/all.
func (h *ProblemsHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.problems.List(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProblemListResponse(entries)})
}

// Tags handles GET /api/problems/tags.
func (h *ProblemsHandler) Tags(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tags, err := h.problems.Tags(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tags})
}

// Get handles GET /api/problems/:id.
func (h *ProblemsHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entry, err := h.problems.Get(c.Context(), claims.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProblemResponse(entry)})
}

// Update handles PUT /api/problems/:id.
func (h *ProblemsHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProblemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	entry, err := h.problems.Update(c.Context(), claims.UserID, c.Params("id"), func(e *domain.ProblemEntry) {
		req.Apply(e)
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProblemResponse(entry)})
}

// Delete handles DELETE /api/problems/:id.
func (h *ProblemsHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.problems.Delete(c.Context(), claims.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "problem deleted successfully"})
}
