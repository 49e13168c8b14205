package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/api/dto"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/query"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/service"
	apperrors "github.com/SalahNassar0/IT-Tickets-Analysis/pkg/util"
)

// AnalyticsHandler serves the aggregated views the dashboard charts from.
type AnalyticsHandler struct {
	service *service.DashboardService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(dashboardService *service.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{service: dashboardService}
}

// Summary GET /datasets/:id/summary.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Summary(c.Context(), c.Params("id"), spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Aggregate GET /datasets/:id/aggregate?dimension=issue_type.
func (h *AnalyticsHandler) Aggregate(c *fiber.Ctx) error {
	dimension, err := query.ParseDimension(c.Query("dimension"))
	if err != nil {
		return apperrors.NewValidationError("invalid dimension", map[string]any{"value": c.Query("dimension")})
	}
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.Aggregate(c.Context(), c.Params("id"), spec, dimension)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buckets})
}

// Timeline GET /datasets/:id/timeline.
func (h *AnalyticsHandler) Timeline(c *fiber.Ctx) error {
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.Timeline(c.Context(), c.Params("id"), spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": buckets})
}

// Records GET /datasets/:id/records. Ordered by resolution duration,
// longest first, mirroring the per-ticket resolution table.
func (h *AnalyticsHandler) Records(c *fiber.Ctx) error {
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	records, err := h.service.Records(c.Context(), c.Params("id"), spec)
	if err != nil {
		return err
	}
	items := make([]dto.TicketRecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.TicketRecordFromDomain(record))
	}
	return c.JSON(fiber.Map{"data": items})
}
