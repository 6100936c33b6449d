package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FICContribution es el aporte mensual al Fondo de la Industria de la
// Construcción: un agregado por empresa y mes sobre las nóminas calculadas
// cuyo IBC supera 4 SMMLV. Upsert idempotente por (empresa, año, mes).
type FICContribution struct {
	ID            string
	CompanyID     string
	Year          int
	Month         int
	EmployeeCount int
	BaseTotal     decimal.Decimal // suma de IBC de los empleados que aplican
	Amount        decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PilaRecord es la fila por empleado del reporte PILA del período: base,
// días y cada aporte liquidado. El generador del archivo plano (externo a
// este sistema) la consume tal cual.
type PilaRecord struct {
	EmployeeID       string
	DocumentType     string
	DocumentNumber   string
	FullName         string
	DaysWorked       int
	IBC              decimal.Decimal
	SaludEmpleado    decimal.Decimal
	SaludEmpleador   decimal.Decimal
	PensionEmpleado  decimal.Decimal
	PensionEmpleador decimal.Decimal
	FSP              decimal.Decimal
	ARL              decimal.Decimal
	SENA             decimal.Decimal
	ICBF             decimal.Decimal
	CajaCompensacion decimal.Decimal
}
