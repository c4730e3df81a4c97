package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Session state is carried entirely in two client cookies: the claimed user
// id and the session token. There is no server-side session store.
const (
	UserIDCookie       = "user_id"
	SessionTokenCookie = "session_token"
)

// SetSessionCookies stores the session pair on the response after a
// successful login.
func SetSessionCookies(c *fiber.Ctx, userID uint, token string) {
	expires := time.Now().Add(tokenLifetime)

	c.Cookie(&fiber.Cookie{
		Name:     UserIDCookie,
		Value:    strconv.FormatUint(uint64(userID), 10),
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     SessionTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookies removes the session pair at logout. The token itself
// is not invalidated server-side; it simply stops being presented.
func ClearSessionCookies(c *fiber.Ctx) {
	c.ClearCookie(UserIDCookie, SessionTokenCookie)
}

// SessionFromRequest reads the claimed session pair off the request. ok is
// false when either cookie is absent or the user id is not a valid integer.
func SessionFromRequest(c *fiber.Ctx) (userID uint, token string, ok bool) {
	idValue := c.Cookies(UserIDCookie)
	token = c.Cookies(SessionTokenCookie)
	if idValue == "" || token == "" {
		return 0, "", false
	}

	id, err := strconv.ParseUint(idValue, 10, 32)
	if err != nil {
		return 0, "", false
	}

	return uint(id), token, true
}
