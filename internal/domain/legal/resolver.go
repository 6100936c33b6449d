// Package legal resuelve parámetros legales estatutarios por vigencia.
// La ausencia de un parámetro no es un error: el cálculo dependiente aporta
// cero (política de negocio; ver pkg/config Payroll.StrictParameters para el
// modo estricto).
package legal

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// Resolver resuelve parámetros legales sobre un conjunto cargado en memoria
// (el motor lo arma una vez por corrida; la configuración es de solo lectura
// durante el cálculo).
type Resolver struct {
	params []*entity.LegalParameter
}

// NewResolver construye el resolver con los parámetros disponibles.
func NewResolver(params []*entity.LegalParameter) *Resolver {
	return &Resolver{params: params}
}

// Resolve devuelve el parámetro del concepto vigente en asOf, o nil si no hay
// ninguno. Si varios cubren la fecha (dato mal formado), gana el de
// EffectiveFrom más reciente: el desempate debe ser determinista.
func (r *Resolver) Resolve(conceptCode string, asOf time.Time) *entity.LegalParameter {
	var best *entity.LegalParameter
	for _, p := range r.params {
		if p.ConceptCode != conceptCode || !p.InEffect(asOf) {
			continue
		}
		if best == nil || p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
		}
	}
	return best
}

// Amount devuelve el valor fijo del concepto vigente, o cero si no existe.
func (r *Resolver) Amount(conceptCode string, asOf time.Time) decimal.Decimal {
	if p := r.Resolve(conceptCode, asOf); p != nil {
		return p.FixedAmount
	}
	return decimal.Zero
}

// EmployeePct devuelve el porcentaje a cargo del trabajador (fracción, no
// porcentaje: 4.0% → 0.04), o cero si el concepto no está configurado.
func (r *Resolver) EmployeePct(conceptCode string, asOf time.Time) decimal.Decimal {
	if p := r.Resolve(conceptCode, asOf); p != nil {
		return p.EmployeePct.Div(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// EmployerPct devuelve la fracción a cargo del empleador, o cero.
func (r *Resolver) EmployerPct(conceptCode string, asOf time.Time) decimal.Decimal {
	if p := r.Resolve(conceptCode, asOf); p != nil {
		return p.EmployerPct.Div(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// Has indica si el concepto tiene parámetro vigente en la fecha.
func (r *Resolver) Has(conceptCode string, asOf time.Time) bool {
	return r.Resolve(conceptCode, asOf) != nil
}
