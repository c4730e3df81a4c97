package server

import (
	"net/http"
	"testing"

	"birdlog/internal/auth"
	"birdlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginFlow(t *testing.T) {
	app, _, db := setupTestServer(t)

	cookies := signupAndLogin(t, app, "a@x.com", "secret")

	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck.Value != ""
	}
	assert.True(t, names[auth.UserIDCookie], "login must set the user id cookie")
	assert.True(t, names[auth.SessionTokenCookie], "login must set the session token cookie")

	// The stored credential is not the plaintext password.
	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotEqual(t, "secret", user.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _, _ := setupTestServer(t)
	signupAndLogin(t, app, "a@x.com", "secret")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body models.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "invalid email or password", body.Error)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	// An unknown email must produce the exact same status and message as a
	// wrong password, to avoid leaking which addresses are registered.
	app, _, _ := setupTestServer(t)
	signupAndLogin(t, app, "a@x.com", "secret")

	wrongPassword, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil))
	require.NoError(t, err)
	var wrongBody models.ErrorResponse
	decodeJSON(t, wrongPassword, &wrongBody)

	unknownEmail, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email": "nobody@x.com", "password": "secret",
	}, nil))
	require.NoError(t, err)
	var unknownBody models.ErrorResponse
	decodeJSON(t, unknownEmail, &unknownBody)

	assert.Equal(t, wrongPassword.StatusCode, unknownEmail.StatusCode)
	assert.Equal(t, wrongBody.Error, unknownBody.Error)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	app, _, _ := setupTestServer(t)
	signupAndLogin(t, app, "a@x.com", "secret")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", map[string]string{
		"email":    "a@x.com",
		"password": "another",
	}, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignup_MissingFields(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", map[string]string{
		"email": "a@x.com",
	}, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app, _, _ := setupTestServer(t)
	cookies := signupAndLogin(t, app, "a@x.com", "secret")

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/logout", nil, cookies))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// Anonymous callers cannot log out.
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/logout", nil, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAnonymousOnlyPages_RedirectWhenLoggedIn(t *testing.T) {
	app, _, _ := setupTestServer(t)
	cookies := signupAndLogin(t, app, "a@x.com", "secret")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/login", nil, cookies))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
