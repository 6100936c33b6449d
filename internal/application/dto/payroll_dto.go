package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePeriodRequest entrada para abrir un período de liquidación.
type CreatePeriodRequest struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// PeriodResponse salida de un período.
type PeriodResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
	Status    string    `json:"status"`
}

// CalculateRequest dispara la corrida para un empleado en un período.
type CalculateRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	PeriodID   string `json:"period_id" validate:"required"`
}

// CalculatePeriodRequest dispara la corrida de todos los empleados activos.
type CalculatePeriodRequest struct {
	PeriodID string `json:"period_id" validate:"required"`
}

// PayrollDetailResponse línea de detalle (concepto aplicado).
type PayrollDetailResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// PayrollRecordResponse la nómina individual completa: devengados,
// deducciones, aportes patronales, provisiones y neto.
type PayrollRecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	PeriodID   string `json:"period_id"`
	Status     string `json:"status"`
	DaysWorked int    `json:"days_worked"`

	SalarioBase     decimal.Decimal `json:"salario_base"`
	IBC             decimal.Decimal `json:"ibc"`
	BasicPay        decimal.Decimal `json:"basico"`
	AuxTransporte   decimal.Decimal `json:"auxilio_transporte"`
	HorasExtra      decimal.Decimal `json:"horas_extra"`
	TotalItems      decimal.Decimal `json:"total_items"`
	OtrosDevengados decimal.Decimal `json:"otros_devengados"`
	TotalDevengado  decimal.Decimal `json:"total_devengado"`

	SaludEmpleado    decimal.Decimal `json:"salud_empleado"`
	PensionEmpleado  decimal.Decimal `json:"pension_empleado"`
	FSP              decimal.Decimal `json:"fsp"`
	RetencionFuente  decimal.Decimal `json:"retencion_fuente"`
	OtrasDeducciones decimal.Decimal `json:"otras_deducciones"`
	TotalPrestamos   decimal.Decimal `json:"total_prestamos"`
	TotalEmbargos    decimal.Decimal `json:"total_embargos"`
	TotalDeducciones decimal.Decimal `json:"total_deducciones"`

	SaludEmpleador     decimal.Decimal `json:"salud_empleador"`
	PensionEmpleador   decimal.Decimal `json:"pension_empleador"`
	ARL                decimal.Decimal `json:"arl"`
	SENA               decimal.Decimal `json:"sena"`
	ICBF               decimal.Decimal `json:"icbf"`
	CajaCompensacion   decimal.Decimal `json:"caja_compensacion"`
	Cesantias          decimal.Decimal `json:"cesantias"`
	InteresesCesantias decimal.Decimal `json:"intereses_cesantias"`
	Prima              decimal.Decimal `json:"prima"`
	Vacaciones         decimal.Decimal `json:"vacaciones"`

	NetoPagar           decimal.Decimal `json:"neto_pagar"`
	CostoTotalEmpleador decimal.Decimal `json:"costo_total_empleador"`

	DIANStatus   string     `json:"dian_status,omitempty"`
	CUNE         string     `json:"cune,omitempty"`
	CalculatedAt *time.Time `json:"calculated_at,omitempty"`

	Details []PayrollDetailResponse `json:"details,omitempty"`
}

// CreateNoveltyRequest registra una novedad del período.
type CreateNoveltyRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	PeriodID   string          `json:"period_id" validate:"required"`
	Type       string          `json:"type" validate:"required"`
	Days       int             `json:"days" validate:"min=0"`
	Hours      decimal.Decimal `json:"hours"`
	Notes      string          `json:"notes"`
}

// CreateWorkedItemRequest registra una línea de destajo.
type CreateWorkedItemRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	PeriodID   string          `json:"period_id" validate:"required"`
	TaskCode   string          `json:"task_code" validate:"required"`
	TaskName   string          `json:"task_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateLoanRequest alta de un préstamo a empleado.
type CreateLoanRequest struct {
	EmployeeID  string          `json:"employee_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Installment decimal.Decimal `json:"installment"`
	StartDate   time.Time       `json:"start_date"`
}

// CreateGarnishmentRequest alta de un embargo judicial.
type CreateGarnishmentRequest struct {
	EmployeeID       string          `json:"employee_id" validate:"required"`
	Class            string          `json:"class" validate:"required,oneof=ALIMENTOS COOPERATIVA FISCAL EJECUTIVO"`
	CourtOrder       string          `json:"court_order"`
	NotificationDate time.Time       `json:"notification_date" validate:"required"`
	Percentage       decimal.Decimal `json:"percentage"`
	FixedAmount      decimal.Decimal `json:"fixed_amount"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
}

// FICResponse agregado mensual del FIC.
type FICResponse struct {
	CompanyID     string          `json:"company_id"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	EmployeeCount int             `json:"employee_count"`
	BaseTotal     decimal.Decimal `json:"base_total"`
	Amount        decimal.Decimal `json:"amount"`
}

// PilaRowResponse fila del reporte PILA.
type PilaRowResponse struct {
	EmployeeID       string          `json:"employee_id"`
	DocumentType     string          `json:"document_type"`
	DocumentNumber   string          `json:"document_number"`
	FullName         string          `json:"full_name"`
	DaysWorked       int             `json:"days_worked"`
	IBC              decimal.Decimal `json:"ibc"`
	SaludEmpleado    decimal.Decimal `json:"salud_empleado"`
	SaludEmpleador   decimal.Decimal `json:"salud_empleador"`
	PensionEmpleado  decimal.Decimal `json:"pension_empleado"`
	PensionEmpleador decimal.Decimal `json:"pension_empleador"`
	FSP              decimal.Decimal `json:"fsp"`
	ARL              decimal.Decimal `json:"arl"`
	SENA             decimal.Decimal `json:"sena"`
	ICBF             decimal.Decimal `json:"icbf"`
	CajaCompensacion decimal.Decimal `json:"caja_compensacion"`
}
