package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/foxxcyber/ocr-gateway/internal/config"
	"github.com/foxxcyber/ocr-gateway/internal/handlers"
	"github.com/foxxcyber/ocr-gateway/internal/middleware"
)

// New builds the Fiber app with global middleware and all routes
func New(cfg *config.Config, h *handlers.OCRHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ocr-gateway",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    cfg.MaxUploadBytes,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	registerRoutes(app, h)
	registerRoutes(app.Group("/api"), h)

	return app
}

func registerRoutes(r fiber.Router, h *handlers.OCRHandler) {
	r.Get("/health", h.Health)
	r.Post("/extract-text", middleware.MultipartRequired(), h.ExtractText)
	r.Post("/extract-text-batch", middleware.MultipartRequired(), h.ExtractTextBatch)
}
