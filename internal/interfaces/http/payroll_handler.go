package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/edoc"
	"github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// PayrollHandler maneja el motor de nómina: cálculo, ciclo de vida,
// desprendible y emisión del documento electrónico (protegido).
type PayrollHandler struct {
	calc       *payroll.CalculateUseCase
	batch      *payroll.BatchUseCase
	lifecycle  *payroll.LifecycleUseCase
	payslip    *payroll.PayslipUseCase
	edoc       *edoc.Orchestrator
	recordRepo repository.PayrollRecordRepository
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(
	calc *payroll.CalculateUseCase,
	batch *payroll.BatchUseCase,
	lifecycle *payroll.LifecycleUseCase,
	payslip *payroll.PayslipUseCase,
	orchestrator *edoc.Orchestrator,
	recordRepo repository.PayrollRecordRepository,
) *PayrollHandler {
	return &PayrollHandler{
		calc:       calc,
		batch:      batch,
		lifecycle:  lifecycle,
		payslip:    payslip,
		edoc:       orchestrator,
		recordRepo: recordRepo,
	}
}

// Calculate corre la liquidación de un empleado en un período. Repetirla
// sobre una nómina CALCULADA la recalcula desde cero.
// POST /api/payroll/calculate
func (h *PayrollHandler) Calculate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmployeeID == "" || in.PeriodID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id y period_id son requeridos"})
	}
	rec, err := h.calc.Calculate(c.Context(), companyID, in.EmployeeID, in.PeriodID)
	if err != nil {
		return h.calcError(c, err)
	}
	details, _ := h.recordRepo.ListDetails(rec.ID)
	return c.JSON(toRecordResponse(rec, details))
}

// CalculatePeriod corre la liquidación de todos los empleados activos del
// período; devuelve el resultado por empleado sin abortar ante fallas puntuales.
// POST /api/payroll/calculate-period
func (h *PayrollHandler) CalculatePeriod(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CalculatePeriodRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PeriodID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period_id requerido"})
	}
	results, err := h.batch.CalculatePeriod(c.Context(), companyID, in.PeriodID)
	if err != nil {
		return h.calcError(c, err)
	}
	return c.JSON(results)
}

// GetRecord obtiene una nómina individual con su detalle de conceptos.
// GET /api/payroll/records/:id
func (h *PayrollHandler) GetRecord(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rec, err := h.recordRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nómina no encontrada"})
	}
	if rec.CompanyID != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	details, err := h.recordRepo.ListDetails(rec.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRecordResponse(rec, details))
}

// Approve pasa la nómina de CALCULADA a APROBADA.
// POST /api/payroll/records/:id/approve
func (h *PayrollHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Approve)
}

// Pay pasa la nómina de APROBADA a PAGADA.
// POST /api/payroll/records/:id/pay
func (h *PayrollHandler) Pay(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Pay)
}

// Annul anula la nómina; no borra, deja rastro.
// POST /api/payroll/records/:id/annul
func (h *PayrollHandler) Annul(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Annul)
}

// Emit firma y envía el documento de nómina electrónica a la DIAN. El
// proceso corre en segundo plano; el estado queda en el registro.
// POST /api/payroll/records/:id/emit
func (h *PayrollHandler) Emit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rec, err := h.recordRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nómina no encontrada"})
	}
	if rec.CompanyID != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	if rec.Status != entity.RecordApproved && rec.Status != entity.RecordPaid {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "solo se emiten nóminas APROBADA o PAGADA"})
	}
	h.edoc.ProcessAsync(rec.ID)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": rec.ID, "dian_status": "PROCESSING"})
}

// Payslip descarga el desprendible de pago en PDF.
// GET /api/payroll/records/:id/payslip
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, filename, err := h.payslip.DownloadPayslipPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nómina no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		if errors.Is(err, domain.ErrEstadoInvalido) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la nómina no tiene desprendible en su estado actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func (h *PayrollHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, companyID, recordID string) (*entity.PayrollRecord, error)) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rec, err := fn(c.Context(), companyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nómina no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		if errors.Is(err, domain.ErrEstadoInvalido) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"id": rec.ID, "status": rec.Status})
}

func (h *PayrollHandler) calcError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado, contrato o período no encontrado"})
	case errors.Is(err, domain.ErrPeriodoCerrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERIOD_CLOSED", Message: "el período no admite cálculos"})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNetoNegativo):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NEGATIVE_NET", Message: err.Error()})
	case errors.Is(err, domain.ErrParametroFaltante):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_PARAMETER", Message: err.Error()})
	case errors.Is(err, domain.ErrIBCInvalido):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_IBC", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// toRecordResponse arma la respuesta completa de la nómina individual.
func toRecordResponse(rec *entity.PayrollRecord, details []*entity.PayrollDetail) *dto.PayrollRecordResponse {
	out := &dto.PayrollRecordResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		PeriodID:   rec.PeriodID,
		Status:     rec.Status,
		DaysWorked: rec.DaysWorked,

		SalarioBase:     rec.SalarioBase,
		IBC:             rec.IBC,
		BasicPay:        rec.BasicPay,
		AuxTransporte:   rec.AuxTransporte,
		HorasExtra:      rec.HorasExtra,
		TotalItems:      rec.TotalItems,
		OtrosDevengados: rec.OtrosDevengados,
		TotalDevengado:  rec.TotalDevengado,

		SaludEmpleado:    rec.SaludEmpleado,
		PensionEmpleado:  rec.PensionEmpleado,
		FSP:              rec.FSP,
		RetencionFuente:  rec.RetencionFuente,
		OtrasDeducciones: rec.OtrasDeducciones,
		TotalPrestamos:   rec.TotalPrestamos,
		TotalEmbargos:    rec.TotalEmbargos,
		TotalDeducciones: rec.TotalDeducciones,

		SaludEmpleador:     rec.SaludEmpleador,
		PensionEmpleador:   rec.PensionEmpleador,
		ARL:                rec.ARL,
		SENA:               rec.SENA,
		ICBF:               rec.ICBF,
		CajaCompensacion:   rec.CajaCompensacion,
		Cesantias:          rec.Cesantias,
		InteresesCesantias: rec.InteresesCesantias,
		Prima:              rec.Prima,
		Vacaciones:         rec.Vacaciones,

		NetoPagar:           rec.NetoPagar,
		CostoTotalEmpleador: rec.CostoTotalEmpleador,

		DIANStatus:   rec.DIANStatus,
		CUNE:         rec.CUNE,
		CalculatedAt: rec.CalculatedAt,
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.PayrollDetailResponse{
			Code:   d.Code,
			Name:   d.Name,
			Type:   d.Type,
			Amount: d.Amount,
		})
	}
	return out
}
