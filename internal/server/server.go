// Package server contains the HTTP handlers for the logbook's endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"birdlog/internal/auth"
	"birdlog/internal/cache"
	"birdlog/internal/config"
	"birdlog/internal/database"
	"birdlog/internal/middleware"
	"birdlog/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config        *config.Config
	db            *gorm.DB
	redis         *redis.Client
	codec         *auth.TokenCodec
	userRepo      repository.UserRepository
	noteRepo      repository.NoteRepository
	behaviourRepo repository.BehaviourRepository
	speciesRepo   repository.SpeciesRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	codec := auth.NewTokenCodec(cfg.SessionSecret)
	middleware.InitMiddleware(codec)

	return &Server{
		config:        cfg,
		db:            db,
		redis:         cache.GetClient(),
		codec:         codec,
		userRepo:      repository.NewUserRepository(db),
		noteRepo:      repository.NewNoteRepository(db),
		behaviourRepo: repository.NewBehaviourRepository(db),
		speciesRepo:   repository.NewSpeciesRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.HealthCheck)

	// Listing is open to everyone
	app.Get("/", s.ListNotes)

	// Auth routes: anonymous-only pages, rate-limited mutations
	app.Get("/login", middleware.AnonymousOnly, s.LoginForm)
	app.Post("/login", middleware.AnonymousOnly,
		middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/signup", middleware.AnonymousOnly, s.SignupForm)
	app.Post("/signup", middleware.AnonymousOnly,
		middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	app.Delete("/logout", middleware.AuthRequired, s.Logout)

	// Sighting records. Browser-facing reads redirect anonymous callers to
	// the login page; writes reject them outright.
	app.Get("/note", middleware.AuthRequiredOrLogin, s.NewNoteForm)
	app.Post("/note", middleware.AuthRequired, s.CreateNote)
	app.Get("/note/:id", middleware.AuthRequiredOrLogin, s.GetNote)
	app.Get("/note/:id/edit", middleware.AuthRequiredOrLogin, s.EditNoteForm)
	app.Put("/note/:id/edit", middleware.AuthRequired, s.UpdateNote)
	app.Delete("/note/:id/delete", middleware.AuthRequired, s.DeleteNote)

	// Per-user listing
	app.Get("/users/:id", middleware.AuthRequiredOrLogin, s.GetUserNotes)

	// Behaviour catalog
	app.Get("/behaviours", middleware.AuthRequiredOrLogin, s.ListBehaviours)
	app.Delete("/behaviours/:id/delete", middleware.AuthRequired, s.DeleteBehaviour)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Birdlog",
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
