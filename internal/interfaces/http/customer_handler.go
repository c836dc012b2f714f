package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/application/extraction"
	"github.com/minatoent/backoffice-api/internal/domain"
)

// CustomerHandler handles customer folder search and document extraction.
type CustomerHandler struct {
	uc *extraction.UseCase
}

func NewCustomerHandler(uc *extraction.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Search suggests customer folders for a partial name.
// POST /api/customers/search
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	var in dto.CustomerSearchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	suggestions, err := h.uc.SearchCustomers(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(suggestions)
}

// Process extracts and reconciles the Aadhaar card from a selected folder.
// POST /api/customers/process
func (h *CustomerHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessFolderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.uc.ProcessFolder(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrReconciliation):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "RECONCILIATION", Message: err.Error()})
		case errors.Is(err, domain.ErrExtraction):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "EXTRACTION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(resp)
}
