package http

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/domain"
)

// BillingHandler handles bill generation and download.
type BillingHandler struct {
	uc       *billing.GenerateBillUseCase
	billsDir string
}

func NewBillingHandler(uc *billing.GenerateBillUseCase, billsDir string) *BillingHandler {
	return &BillingHandler{uc: uc, billsDir: billsDir}
}

// Create runs the bill-generation transaction.
// POST /api/bills
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.GenerateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.uc.GenerateBill(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrUnitSold):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNIT_SOLD", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Download streams a previously generated bill PDF. The filename is pinned to
// its base name so the handler can only serve files from the bills directory.
// GET /api/bills/:filename
func (h *BillingHandler) Download(c *fiber.Ctx) error {
	raw, err := filenameParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid filename"})
	}
	path := filepath.Join(h.billsDir, raw)
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+raw+`"`)
	return c.SendFile(path)
}

func filenameParam(c *fiber.Ctx) (string, error) {
	// Fiber keeps path params percent-encoded.
	raw, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return "", err
	}
	if raw == "" || raw != filepath.Base(raw) || strings.Contains(raw, "..") || !strings.HasSuffix(raw, ".pdf") {
		return "", errors.New("bad filename")
	}
	return raw, nil
}
