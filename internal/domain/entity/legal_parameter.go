package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de concepto de parámetros legales. Los valores (SMMLV, UVT, tarifas)
// se legislan cada año: viven en la tabla legal_parameters con vigencias, nunca
// como literales compilados.
const (
	ParamSMMLV         = "SMMLV"
	ParamAuxTransporte = "AUXILIO_TRANSPORTE"
	ParamUVT           = "UVT"
	ParamSalud         = "SALUD"
	ParamPension       = "PENSION"
	ParamFSP           = "FSP"
	ParamSENA          = "SENA"
	ParamICBF          = "ICBF"
	ParamCaja          = "CAJA_COMPENSACION"
	ParamCesantias     = "CESANTIAS"
	ParamIntCesantias  = "INTERESES_CESANTIAS"
	ParamPrima         = "PRIMA"
	ParamVacaciones    = "VACACIONES"
	ParamARLNivelI     = "ARL_NIVEL_I"
	ParamARLNivelII    = "ARL_NIVEL_II"
	ParamARLNivelIII   = "ARL_NIVEL_III"
	ParamARLNivelIV    = "ARL_NIVEL_IV"
	ParamARLNivelV     = "ARL_NIVEL_V"
)

// ParamARLForClass devuelve el código de parámetro ARL para la clase de
// riesgo 1..5. Clase fuera de rango resuelve como V: en obra, ante la duda,
// el riesgo más alto.
func ParamARLForClass(riskClass int) string {
	switch riskClass {
	case 1:
		return ParamARLNivelI
	case 2:
		return ParamARLNivelII
	case 3:
		return ParamARLNivelIII
	case 4:
		return ParamARLNivelIV
	default:
		return ParamARLNivelV
	}
}

// LegalParameter es un parámetro estatutario con vigencia. Puede ser un
// porcentaje repartido entre empleado y empleador (SALUD, PENSION) o un valor
// fijo (SMMLV, AUXILIO_TRANSPORTE, UVT) en FixedAmount.
type LegalParameter struct {
	ID            string
	ConceptCode   string
	Description   string
	TotalPct      decimal.Decimal // porcentaje total, ej. 12.5 para SALUD
	EmployeePct   decimal.Decimal // 4.0
	EmployerPct   decimal.Decimal // 8.5
	FixedAmount   decimal.Decimal // para SMMLV/AUXILIO_TRANSPORTE/UVT
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = vigencia abierta
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// pctTolerance tolerancia al validar empleado% + empleador% == total%.
var pctTolerance = decimal.RequireFromString("0.001")

// Validate exige que la partición empleado/empleador cierre contra el total
// (tolerancia 0.001) y que la vigencia sea coherente.
func (p *LegalParameter) Validate() error {
	if p.ConceptCode == "" {
		return ErrLegalParameterInvalid
	}
	sum := p.EmployeePct.Add(p.EmployerPct)
	if sum.Sub(p.TotalPct).Abs().GreaterThan(pctTolerance) {
		return ErrLegalParameterInvalid
	}
	if p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom) {
		return ErrLegalParameterInvalid
	}
	return nil
}

// InEffect indica si el parámetro está vigente en la fecha dada.
func (p *LegalParameter) InEffect(asOf time.Time) bool {
	if !p.Active {
		return false
	}
	if asOf.Before(p.EffectiveFrom) {
		return false
	}
	if p.EffectiveTo != nil && asOf.After(*p.EffectiveTo) {
		return false
	}
	return true
}
