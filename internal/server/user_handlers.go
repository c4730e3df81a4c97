package server

import (
	"errors"
	"time"

	"birdlog/internal/models"
	"birdlog/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetUserNotes handles GET /users/:id. An unknown user and a user with zero
// records are distinct states internally, but both render as the same 404.
func (s *Server) GetUserNotes(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	rows, err := s.noteRepo.ListByUser(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrNoNotes) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Notes for user", id))
		}
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	for i := range rows {
		if local, lerr := models.LocalTimestamp(rows[i].CreatedDate, rows[i].CreatedTime, time.Local); lerr == nil {
			rows[i].CreatedLocal = local
		}
	}

	return c.JSON(fiber.Map{"notes": rows})
}
