package server

import (
	"birdlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListBehaviours handles GET /behaviours
func (s *Server) ListBehaviours(c *fiber.Ctx) error {
	behaviours, err := s.behaviourRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}
	return c.JSON(fiber.Map{"behaviours": behaviours})
}

// DeleteBehaviour handles DELETE /behaviours/:id/delete. Removing a catalog
// entry also removes its note associations.
func (s *Server) DeleteBehaviour(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid behaviour ID"))
	}

	if _, err := s.behaviourRepo.GetByID(c.Context(), uint(id)); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusServiceUnavailable, err)
	}

	if err := s.behaviourRepo.Delete(c.Context(), uint(id)); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	return c.Redirect("/behaviours", fiber.StatusSeeOther)
}
