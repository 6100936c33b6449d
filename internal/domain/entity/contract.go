package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contrato soportados. El tipo determina qué aportes aplican y el
// porcentaje del ingreso que constituye el IBC (100% laboral, 40% prestación
// de servicios).
const (
	ContractTypeIndefinido = "INDEFINIDO"
	ContractTypeFijo       = "FIJO"
	ContractTypeObraLabor  = "OBRA_LABOR"
	ContractTypeServicios  = "SERVICIOS"
	ContractTypeAprendiz   = "APRENDIZAJE"
)

// ContractTypeRules reglas estatutarias por tipo de contrato.
type ContractTypeRules struct {
	Code          string
	IBCPercentage decimal.Decimal // 1.00 laboral, 0.40 servicios
	// AportesEmpleador indica si la empresa liquida salud/pensión/ARL patronales.
	AportesEmpleador bool
	// Prestaciones indica si se provisionan cesantías, prima y vacaciones.
	Prestaciones bool
}

// RulesForContractType resuelve las reglas del tipo; tipos desconocidos se
// tratan como laborales a término indefinido (el caso más protector).
func RulesForContractType(code string) ContractTypeRules {
	switch code {
	case ContractTypeServicios:
		return ContractTypeRules{Code: code, IBCPercentage: decimal.RequireFromString("0.40"), AportesEmpleador: false, Prestaciones: false}
	case ContractTypeAprendiz:
		return ContractTypeRules{Code: code, IBCPercentage: decimal.NewFromInt(1), AportesEmpleador: true, Prestaciones: false}
	case ContractTypeFijo, ContractTypeObraLabor, ContractTypeIndefinido:
		return ContractTypeRules{Code: code, IBCPercentage: decimal.NewFromInt(1), AportesEmpleador: true, Prestaciones: true}
	default:
		return ContractTypeRules{Code: ContractTypeIndefinido, IBCPercentage: decimal.NewFromInt(1), AportesEmpleador: true, Prestaciones: true}
	}
}

// Contract representa el vínculo laboral de un empleado. Invariante: a lo sumo
// un contrato activo por empleado y empresa (activar uno desactiva los demás;
// lo garantizan el repositorio y un índice parcial único en la tabla).
type Contract struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	ContractType string // ver constantes ContractType*
	Salary       decimal.Decimal
	// RiskClass clase de riesgo ARL 1..5; construcción típicamente V.
	RiskClass int
	StartDate time.Time
	EndDate   *time.Time // nil = vigente sin fecha fin
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate verifica coherencia de fechas y salario antes de persistir.
func (c *Contract) Validate() error {
	if c.EmployeeID == "" || c.ContractType == "" {
		return ErrContractInvalid
	}
	if c.Salary.IsNegative() || c.Salary.IsZero() {
		return ErrContractInvalid
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return ErrContractInvalid
	}
	if c.RiskClass < 0 || c.RiskClass > 5 {
		return ErrContractInvalid
	}
	return nil
}
