package server

import (
	"birdlog/internal/auth"
	"birdlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignupForm handles GET /signup
func (s *Server) SignupForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "signup"})
}

// Signup handles POST /signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Email already registered"))
	}

	credential, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Password: credential,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable, err)
	}

	return c.Redirect("/login", fiber.StatusSeeOther)
}

// LoginForm handles GET /login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// Login handles POST /login. An unknown email and a wrong password produce
// the same response so registered addresses cannot be probed.
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable, err)
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return models.RespondWithError(c, fiber.StatusForbidden, models.NewAuthError())
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	auth.SetSessionCookies(c, user.ID, token)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles DELETE /logout. The token is not invalidated server-side;
// the client simply stops holding it.
func (s *Server) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookies(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
