package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

// NoveltyHandler captura las entradas del período: novedades, destajo,
// préstamos y embargos (protegido).
type NoveltyHandler struct {
	uc *usecase.NoveltyUseCase
}

// NewNoveltyHandler construye el handler.
func NewNoveltyHandler(uc *usecase.NoveltyUseCase) *NoveltyHandler {
	return &NoveltyHandler{uc: uc}
}

// CreateNovelty registra una novedad (ausencia, incapacidad, horas extra).
// POST /api/novelties
func (h *NoveltyHandler) CreateNovelty(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateNoveltyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CreateNovelty(companyID, in); err != nil {
		return h.captureError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CreateWorkedItem registra una línea de obra ejecutada a destajo.
// POST /api/worked-items
func (h *NoveltyHandler) CreateWorkedItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateWorkedItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CreateWorkedItem(companyID, in); err != nil {
		return h.captureError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CreateLoan da de alta un préstamo a empleado.
// POST /api/loans
func (h *NoveltyHandler) CreateLoan(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CreateLoan(companyID, in); err != nil {
		return h.captureError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CreateGarnishment registra un embargo judicial notificado.
// POST /api/garnishments
func (h *NoveltyHandler) CreateGarnishment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateGarnishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CreateGarnishment(companyID, in); err != nil {
		return h.captureError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *NoveltyHandler) captureError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado o período no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrPeriodoCerrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERIOD_CLOSED", Message: "el período no admite novedades"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
