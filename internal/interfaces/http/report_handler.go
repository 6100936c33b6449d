package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// ReportHandler consolida los agregados mensuales: FIC y PILA (protegido).
type ReportHandler struct {
	fic  *payroll.FICUseCase
	pila *payroll.PilaUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(fic *payroll.FICUseCase, pila *payroll.PilaUseCase) *ReportHandler {
	return &ReportHandler{fic: fic, pila: pila}
}

func yearMonth(c *fiber.Ctx) (int, int, bool) {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year < 2000 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// ConsolidateFIC calcula (o recalcula) el aporte FIC del mes.
// POST /api/reports/fic
func (h *ReportHandler) ConsolidateFIC(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month son requeridos"})
	}
	contribution, err := h.fic.Consolidate(c.Context(), companyID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrParametroFaltante) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_PARAMETER", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toFICResponse(contribution))
}

// GetFIC consulta el aporte FIC ya consolidado del mes.
// GET /api/reports/fic
func (h *ReportHandler) GetFIC(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month son requeridos"})
	}
	contribution, err := h.fic.GetMonth(c.Context(), companyID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if contribution == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el mes no ha sido consolidado"})
	}
	return c.JSON(toFICResponse(contribution))
}

// Pila arma las filas del reporte PILA del mes.
// GET /api/reports/pila
func (h *ReportHandler) Pila(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month son requeridos"})
	}
	rows, err := h.pila.BuildMonth(c.Context(), companyID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PilaRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PilaRowResponse{
			EmployeeID:       r.EmployeeID,
			DocumentType:     r.DocumentType,
			DocumentNumber:   r.DocumentNumber,
			FullName:         r.FullName,
			DaysWorked:       r.DaysWorked,
			IBC:              r.IBC,
			SaludEmpleado:    r.SaludEmpleado,
			SaludEmpleador:   r.SaludEmpleador,
			PensionEmpleado:  r.PensionEmpleado,
			PensionEmpleador: r.PensionEmpleador,
			FSP:              r.FSP,
			ARL:              r.ARL,
			SENA:             r.SENA,
			ICBF:             r.ICBF,
			CajaCompensacion: r.CajaCompensacion,
		})
	}
	return c.JSON(out)
}

func toFICResponse(c *entity.FICContribution) dto.FICResponse {
	return dto.FICResponse{
		CompanyID:     c.CompanyID,
		Year:          c.Year,
		Month:         c.Month,
		EmployeeCount: c.EmployeeCount,
		BaseTotal:     c.BaseTotal,
		Amount:        c.Amount,
	}
}
