package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/application/inventory"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/entity"
)

// InventoryHandler exposes the unit registry.
type InventoryHandler struct {
	registry *inventory.Registry
}

func NewInventoryHandler(registry *inventory.Registry) *InventoryHandler {
	return &InventoryHandler{registry: registry}
}

// Search lists Available units matching the query.
// GET /api/inventory/search?kind=CHASSIS&q=42
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	kind, ok := parseKind(c.Query("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind must be CHASSIS or BATTERY"})
	}
	units := h.registry.Search(kind, c.Query("q"))
	out := make([]dto.InventoryUnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toUnitResponse(u))
	}
	return c.JSON(out)
}

// Find returns one unit by exact serial, Sold units included.
// GET /api/inventory/:kind/:serial
func (h *InventoryHandler) Find(c *fiber.Ctx) error {
	kind, ok := parseKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind must be CHASSIS or BATTERY"})
	}
	serial := c.Params("serial")
	u, err := h.registry.Find(kind, serial)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unit not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(toUnitResponse(u))
}

func parseKind(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case entity.UnitKindChassis:
		return entity.UnitKindChassis, true
	case entity.UnitKindBattery:
		return entity.UnitKindBattery, true
	default:
		return "", false
	}
}

func toUnitResponse(u *entity.InventoryUnit) dto.InventoryUnitResponse {
	return dto.InventoryUnitResponse{
		Kind:             u.Kind,
		SerialNumber:     u.SerialNumber,
		Status:           u.Status,
		MakeModel:        u.MakeModel,
		MotorNumber:      u.MotorNumber,
		ControllerNumber: u.ControllerNumber,
		Color:            u.Color,
		Make:             u.Make,
		Model:            u.Model,
		Ampere:           u.Ampere,
		Warranty:         u.Warranty,
		CostPrice:        u.CostPrice,
	}
}
