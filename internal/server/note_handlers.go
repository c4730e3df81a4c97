package server

import (
	"errors"
	"fmt"
	"time"

	"birdlog/internal/middleware"
	"birdlog/internal/models"
	"birdlog/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// noteRequest carries the submitted sighting fields. BehaviourIDs is a
// pointer so an absent set can be told apart from an explicitly empty one:
// only a supplied set replaces the stored associations.
type noteRequest struct {
	ObservationDate string  `json:"observation_date" form:"observation_date"`
	ObservationTime string  `json:"observation_time" form:"observation_time"`
	Timezone        string  `json:"timezone" form:"timezone"`
	DurationHour    int     `json:"duration_hour" form:"duration_hour"`
	DurationMinute  int     `json:"duration_minute" form:"duration_minute"`
	DurationSecond  int     `json:"duration_second" form:"duration_second"`
	NumberOfBirds   int     `json:"number_of_birds" form:"number_of_birds"`
	FlockType       string  `json:"flock_type" form:"flock_type"`
	Behaviour       string  `json:"behaviour" form:"behaviour"`
	SpeciesID       *uint   `json:"species_id" form:"species_id"`
	BehaviourIDs    *[]uint `json:"behaviour_ids" form:"behaviour_ids"`
}

// normalizeObservation converts the submitted observation date and time to
// UTC storage columns. The submitted clock is interpreted in the supplied
// IANA timezone, defaulting to UTC.
func normalizeObservation(req *noteRequest) (date, clock string, err error) {
	if req.ObservationDate == "" || req.ObservationTime == "" {
		return "", "", fmt.Errorf("observation date and time are required")
	}

	loc := time.UTC
	if req.Timezone != "" {
		loc, err = time.LoadLocation(req.Timezone)
		if err != nil {
			return "", "", fmt.Errorf("unknown timezone %q", req.Timezone)
		}
	}

	instant, err := time.ParseInLocation(
		models.DateLayout+" "+models.TimeLayout,
		req.ObservationDate+" "+req.ObservationTime,
		loc,
	)
	if err != nil {
		return "", "", fmt.Errorf("malformed observation date/time")
	}

	date, clock = models.SplitUTC(instant)
	return date, clock, nil
}

// noteView decorates a record with display timestamps converted from the
// stored UTC columns to server-local time.
type noteView struct {
	*models.Note
	CreatedLocal     string `json:"created_local"`
	LastUpdatedLocal string `json:"last_updated_local"`
}

func newNoteView(note *models.Note) noteView {
	view := noteView{Note: note}
	if local, err := models.LocalTimestamp(note.CreatedDate, note.CreatedTime, time.Local); err == nil {
		view.CreatedLocal = local
	}
	if local, err := models.LocalTimestamp(note.LastUpdatedDate, note.LastUpdatedTime, time.Local); err == nil {
		view.LastUpdatedLocal = local
	}
	return view
}

// catalogs loads the reference data a note form needs.
func (s *Server) catalogs(c *fiber.Ctx) (fiber.Map, error) {
	species, err := s.speciesRepo.List(c.Context())
	if err != nil {
		return nil, err
	}
	behaviours, err := s.behaviourRepo.List(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{"species": species, "behaviours": behaviours}, nil
}

// NewNoteForm handles GET /note
func (s *Server) NewNoteForm(c *fiber.Ctx) error {
	payload, err := s.catalogs(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}
	return c.JSON(payload)
}

// CreateNote handles POST /note
func (s *Server) CreateNote(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	date, clock, err := normalizeObservation(&req)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	note := &models.Note{
		ObservationDate: date,
		ObservationTime: clock,
		DurationHour:    req.DurationHour,
		DurationMinute:  req.DurationMinute,
		DurationSecond:  req.DurationSecond,
		NumberOfBirds:   req.NumberOfBirds,
		FlockType:       req.FlockType,
		Behaviour:       req.Behaviour,
		SpeciesID:       req.SpeciesID,
		CreatedUserID:   userID,
	}

	var behaviourIDs []uint
	if req.BehaviourIDs != nil {
		behaviourIDs = *req.BehaviourIDs
	}

	if err := s.noteRepo.Create(c.Context(), note, behaviourIDs); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	return c.Redirect(fmt.Sprintf("/note/%d", note.ID), fiber.StatusSeeOther)
}

// GetNote handles GET /note/:id
func (s *Server) GetNote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	note, err := s.noteRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Note", id))
		}
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	return c.JSON(newNoteView(note))
}

// loadOwnedNote fetches a record and enforces that the current session owns
// it. Ownership is a direct identity comparison against the immutable
// creating user id; "not the owner" is distinct from "not logged in".
func (s *Server) loadOwnedNote(c *fiber.Ctx) (*models.Note, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	note, err := s.noteRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Note", id))
		}
		return nil, models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	userID, _ := middleware.CurrentUserID(c)
	if note.CreatedUserID != userID {
		return nil, models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("not the owner of this note"))
	}

	return note, nil
}

// EditNoteForm handles GET /note/:id/edit
func (s *Server) EditNoteForm(c *fiber.Ctx) error {
	note, err := s.loadOwnedNote(c)
	if note == nil {
		return err
	}

	payload, catErr := s.catalogs(c)
	if catErr != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(catErr))
	}
	payload["note"] = newNoteView(note)
	return c.JSON(payload)
}

// UpdateNote handles PUT /note/:id/edit
func (s *Server) UpdateNote(c *fiber.Ctx) error {
	note, err := s.loadOwnedNote(c)
	if note == nil {
		return err
	}

	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	date, clock, err := normalizeObservation(&req)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	note.ObservationDate = date
	note.ObservationTime = clock
	note.DurationHour = req.DurationHour
	note.DurationMinute = req.DurationMinute
	note.DurationSecond = req.DurationSecond
	note.NumberOfBirds = req.NumberOfBirds
	note.FlockType = req.FlockType
	note.Behaviour = req.Behaviour
	note.SpeciesID = req.SpeciesID

	var behaviourIDs []uint
	if req.BehaviourIDs != nil {
		behaviourIDs = *req.BehaviourIDs
	}

	if err := s.noteRepo.Update(c.Context(), note, behaviourIDs, req.BehaviourIDs != nil); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	return c.Redirect(fmt.Sprintf("/note/%d", note.ID), fiber.StatusSeeOther)
}

// DeleteNote handles DELETE /note/:id/delete
func (s *Server) DeleteNote(c *fiber.Ctx) error {
	note, err := s.loadOwnedNote(c)
	if note == nil {
		return err
	}

	if err := s.noteRepo.Delete(c.Context(), note.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// ListNotes handles GET /
func (s *Server) ListNotes(c *fiber.Ctx) error {
	rows, resolvedKey, err := s.noteRepo.List(c.Context(), c.Query("sort_by"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStoreError(err))
	}

	for i := range rows {
		if local, lerr := models.LocalTimestamp(rows[i].CreatedDate, rows[i].CreatedTime, time.Local); lerr == nil {
			rows[i].CreatedLocal = local
		}
	}

	return c.JSON(fiber.Map{
		"sort_by": resolvedKey,
		"notes":   rows,
	})
}
