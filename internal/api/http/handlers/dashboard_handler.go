package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/service"
)

// DashboardHandler exposes aggregation endpoints.
type DashboardHandler struct {
	service *service.StatsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{service: statsService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}

// KPI GET /dashboard/kpi.
func (h *DashboardHandler) KPI(c *fiber.Ctx) error {
	kpi, err := h.service.KPI(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kpi})
}
