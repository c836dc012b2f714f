package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minatoent/backoffice-api/internal/application/analytics"
	"github.com/minatoent/backoffice-api/internal/application/dto"
)

// DashboardHandler serves the ledger aggregates.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary returns totals, monthly breakdown and inventory counts.
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}
