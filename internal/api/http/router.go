package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Datasets  *handlers.DatasetsHandler
	Analytics *handlers.AnalyticsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	datasets := app.Group("/datasets")
	datasets.Post("/", cfg.Datasets.Upload)
	datasets.Get("/:id/report", cfg.Datasets.Report)
	datasets.Get("/:id/export", cfg.Datasets.Export)
	datasets.Delete("/:id", cfg.Datasets.Delete)

	datasets.Get("/:id/summary", cfg.Analytics.Summary)
	datasets.Get("/:id/aggregate", cfg.Analytics.Aggregate)
	datasets.Get("/:id/timeline", cfg.Analytics.Timeline)
	datasets.Get("/:id/records", cfg.Analytics.Records)
}
