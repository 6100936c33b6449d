package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

// LegalHandler maneja parámetros legales y tablas de retención (solo admin).
type LegalHandler struct {
	uc *usecase.LegalParameterUseCase
}

// NewLegalHandler construye el handler.
func NewLegalHandler(uc *usecase.LegalParameterUseCase) *LegalHandler {
	return &LegalHandler{uc: uc}
}

// CreateParameter abre una nueva vigencia de un parámetro legal.
// POST /api/legal-parameters
func (h *LegalHandler) CreateParameter(c *fiber.Ctx) error {
	var in dto.CreateLegalParameterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	param, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(param)
}

// ListAsOf lista los parámetros vigentes en una fecha (query as_of, hoy por defecto).
// GET /api/legal-parameters
func (h *LegalHandler) ListAsOf(c *fiber.Ctx) error {
	asOf := time.Now()
	if q := c.Query("as_of"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser una fecha YYYY-MM-DD"})
		}
		asOf = parsed
	}
	params, err := h.uc.ListAsOf(asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(params)
}

// CreateRetentionTable carga una nueva tabla de retención en la fuente.
// POST /api/retention-tables
func (h *LegalHandler) CreateRetentionTable(c *fiber.Ctx) error {
	var in dto.CreateRetentionTableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CreateRetentionTable(in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusCreated)
}
