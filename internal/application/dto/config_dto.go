package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLegalParameterRequest entrada para registrar un parámetro legal con
// vigencia. Los porcentajes van en puntos (ej. 12.5), no en fracción.
type CreateLegalParameterRequest struct {
	ConceptCode   string          `json:"concept_code" validate:"required"`
	Description   string          `json:"description"`
	TotalPct      decimal.Decimal `json:"total_pct"`
	EmployeePct   decimal.Decimal `json:"employee_pct"`
	EmployerPct   decimal.Decimal `json:"employer_pct"`
	FixedAmount   decimal.Decimal `json:"fixed_amount"`
	EffectiveFrom time.Time       `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time      `json:"effective_to"`
}

// LegalParameterResponse salida de un parámetro legal.
type LegalParameterResponse struct {
	ID            string          `json:"id"`
	ConceptCode   string          `json:"concept_code"`
	Description   string          `json:"description"`
	TotalPct      decimal.Decimal `json:"total_pct"`
	EmployeePct   decimal.Decimal `json:"employee_pct"`
	EmployerPct   decimal.Decimal `json:"employer_pct"`
	FixedAmount   decimal.Decimal `json:"fixed_amount"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`
	Active        bool            `json:"active"`
}

// CreateConceptRequest entrada para crear un concepto laboral.
type CreateConceptRequest struct {
	Code             string          `json:"code" validate:"required,min=1,max=50"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Type             string          `json:"type" validate:"required,oneof=DEVENGADO DEDUCCION"`
	CalcMode         string          `json:"calc_mode" validate:"required,oneof=FIJO FORMULA MANUAL"`
	Formula          string          `json:"formula"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	Base             string          `json:"base" validate:"omitempty,oneof=SALARIO IBC TOTAL_DEVENGADO"`
	AfectaIBC        bool            `json:"afecta_ibc"`
	AfectaParafiscal bool            `json:"afecta_parafiscales"`
	EsProvision      bool            `json:"es_provision"`
	Orden            int             `json:"orden"`
}

// ConceptResponse salida de un concepto laboral.
type ConceptResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	CalcMode         string          `json:"calc_mode"`
	Formula          string          `json:"formula,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	Base             string          `json:"base,omitempty"`
	AfectaIBC        bool            `json:"afecta_ibc"`
	AfectaParafiscal bool            `json:"afecta_parafiscales"`
	EsProvision      bool            `json:"es_provision"`
	Orden            int             `json:"orden"`
	Active           bool            `json:"active"`
}

// ValidateFormulaRequest entrada del chequeo sintáctico de fórmulas.
type ValidateFormulaRequest struct {
	Formula string `json:"formula" validate:"required"`
}

// ValidateFormulaResponse resultado del chequeo: válida o el primer error
// con su posición en el texto.
type ValidateFormulaResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// CreateRetentionTableRequest alta de una versión de la tabla de retención.
type CreateRetentionTableRequest struct {
	Description   string                  `json:"description"`
	EffectiveFrom time.Time               `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time              `json:"effective_to"`
	Brackets      []RetentionBracketInput `json:"brackets" validate:"required,min=1"`
}

// RetentionBracketInput un rango de la tabla en UVT.
type RetentionBracketInput struct {
	FromUVT decimal.Decimal `json:"from_uvt"`
	ToUVT   decimal.Decimal `json:"to_uvt"` // 0 = abierto hacia arriba
	RatePct decimal.Decimal `json:"rate_pct"`
}
