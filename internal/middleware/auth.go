// Package middleware provides authentication, logging and rate-limiting
// middleware for the application.
package middleware

import (
	"birdlog/internal/auth"
	"birdlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

var codec *auth.TokenCodec

// InitMiddleware wires the session token codec into the auth middleware.
func InitMiddleware(tc *auth.TokenCodec) {
	codec = tc
}

// resolveSession evaluates the claimed session cookies. A request whose
// token does not verify for its claimed user id is anonymous, no matter how
// well-formed the token looks.
func resolveSession(c *fiber.Ctx) (uint, bool) {
	userID, token, ok := auth.SessionFromRequest(c)
	if !ok {
		return 0, false
	}
	if !codec.Verify(userID, token) {
		return 0, false
	}
	return userID, true
}

// AuthRequired enforces authentication on write paths. Anonymous callers are
// rejected with 403.
func AuthRequired(c *fiber.Ctx) error {
	userID, ok := resolveSession(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("not logged in"))
	}

	c.Locals("userID", userID)
	return c.Next()
}

// AuthRequiredOrLogin enforces authentication on read paths. Anonymous
// callers are redirected to the login page instead of rejected.
func AuthRequiredOrLogin(c *fiber.Ctx) error {
	userID, ok := resolveSession(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// AnonymousOnly redirects already-authenticated callers away from the login
// and signup pages.
func AnonymousOnly(c *fiber.Ctx) error {
	if _, ok := resolveSession(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// CurrentUserID returns the authenticated user id stored by AuthRequired.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
