package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de concepto laboral.
const (
	ConceptTypeEarning   = "DEVENGADO"
	ConceptTypeDeduction = "DEDUCCION"
)

// Modo de cálculo del concepto.
const (
	CalcModeFixed   = "FIJO"    // valor fijo en Amount
	CalcModeFormula = "FORMULA" // expresión evaluada contra el contexto del motor
	CalcModeManual  = "MANUAL"  // capturado a mano en la novedad
)

// Base de cálculo para conceptos porcentuales.
const (
	BaseSalario    = "SALARIO"
	BaseIBC        = "IBC"
	BaseDevengados = "TOTAL_DEVENGADO"
)

// LaborConcept es una entrada del catálogo de conceptos (devengados y
// deducciones configurables). Los conceptos con fórmula se evalúan en el
// orden del campo Orden; un concepto puede referenciar en su fórmula los
// resultados de los anteriores.
type LaborConcept struct {
	ID         string
	CompanyID  string
	Code       string
	Name       string
	Type       string // DEVENGADO | DEDUCCION
	CalcMode   string // FIJO | FORMULA | MANUAL
	Formula    string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Base       string // SALARIO | IBC | TOTAL_DEVENGADO
	// AfectaIBC marca si el concepto suma a la base de cotización.
	AfectaIBC bool
	// AfectaParafiscales marca si suma a la base parafiscal.
	AfectaParafiscales bool
	// EsProvision marca conceptos que son provisión prestacional (costo
	// patronal, nunca se pagan ni descuentan al trabajador).
	EsProvision bool
	Orden       int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate rechaza catálogo incoherente en el borde de escritura.
func (c *LaborConcept) Validate() error {
	if c.Code == "" || c.Name == "" {
		return ErrConceptInvalid
	}
	if c.Type != ConceptTypeEarning && c.Type != ConceptTypeDeduction {
		return ErrConceptInvalid
	}
	switch c.CalcMode {
	case CalcModeFixed:
		if c.Amount.IsNegative() {
			return ErrConceptInvalid
		}
	case CalcModeFormula:
		if c.Formula == "" {
			return ErrConceptInvalid
		}
	case CalcModeManual:
	default:
		return ErrConceptInvalid
	}
	return nil
}
