package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"birdlog/internal/auth"
	"birdlog/internal/config"
	"birdlog/internal/database"
	"birdlog/internal/middleware"
	"birdlog/internal/models"
	"birdlog/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSessionSecret = "handler-test-secret-1234567890abcdef"

// setupTestServer wires a server against an in-memory database with no
// Redis, mirroring production wiring minus the network.
func setupTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	codec := auth.NewTokenCodec(testSessionSecret)
	middleware.InitMiddleware(codec)

	s := &Server{
		config:        &config.Config{SessionSecret: testSessionSecret, Port: "0"},
		db:            db,
		codec:         codec,
		userRepo:      repository.NewUserRepository(db),
		noteRepo:      repository.NewNoteRepository(db),
		behaviourRepo: repository.NewBehaviourRepository(db),
		speciesRepo:   repository.NewSpeciesRepository(db),
	}

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s, db
}

// signupAndLogin registers a user and returns the session cookies a browser
// would hold after login.
func signupAndLogin(t *testing.T, app *fiber.App, email, password string) []*http.Cookie {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", fiber.Map{
		"email":    email,
		"password": password,
	}, nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "signup should redirect to /login")

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
		"email":    email,
		"password": password,
	}, nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "login should redirect to /")

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func jsonRequest(t *testing.T, method, path string, body any, cookies []*http.Cookie) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func firstSpeciesID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	var sp models.Species
	require.NoError(t, db.First(&sp).Error)
	return sp.ID
}
