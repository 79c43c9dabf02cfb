package server

import (
	"errors"
	"log"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"gorm.io/gorm"

	"petsynth/internal/ai"
	"petsynth/internal/assets"
	"petsynth/internal/config"
	"petsynth/internal/handlers"
	"petsynth/internal/middleware"
	"petsynth/internal/ratelimit"
	"petsynth/internal/types"
)

// New builds the configured Fiber application with all routes mounted.
// The caller owns the database handle and provider lifecycles.
func New(cfg *config.Config, db *gorm.DB, text ai.TextProvider, images ai.ImageProvider) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("petsynth")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	petsHandler := &handlers.PetsHandler{DB: db}
	generateHandler := &handlers.GenerateHandler{DB: db, Text: text, Images: images}
	storeHandler := &handlers.StoreHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	app.Get("/health", healthHandler.Check)

	// Persisted pet images
	app.Static(assets.PublicPrefix, cfg.AssetDir)

	// API routes under /api
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireUser(cfg.JWTSecret), authHandler.Me)

	pets := api.Group("/pets")
	pets.Get("/", petsHandler.List)
	pets.Get("/:id", petsHandler.Get)

	// Generation is authenticated and rate limited per caller
	limiter := ratelimit.NewDefault()
	generate := api.Group("/generate", middleware.RequireUser(cfg.JWTSecret), middleware.RateLimit(limiter, "generate"))
	generate.Post("/", generateHandler.Generate)
	generate.Post("/accept", generateHandler.Accept)

	store := api.Group("/store", middleware.RequireUser(cfg.JWTSecret))
	store.Get("/", storeHandler.List)
	store.Post("/", storeHandler.Add)
	store.Delete("/:petId", storeHandler.Remove)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	return app
}

// ErrorHandler maps application errors onto the standard envelope. It is
// the app-level error handler and is reused by handler tests.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorType := "unknown"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("unhandled error on %s: %v", c.OriginalURL(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
