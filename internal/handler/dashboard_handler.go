package handler

import (
	"go-inventory-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
// GET /api/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return ok(c, fiber.StatusOK, "Dashboard stats retrieved", stats)
}
