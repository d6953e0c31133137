package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/cracyfrog/Metodo-Fast/internal/handler"
	"github.com/cracyfrog/Metodo-Fast/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Discover *handler.DiscoverHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics stay outside the rate-limited API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")
	api.Use(middleware.NewDiscoverRateLimiter().Handler())

	api.Get("/discover", h.Discover.Get)
}
