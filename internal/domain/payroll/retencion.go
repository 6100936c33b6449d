package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// Topes de depuración de la retención en la fuente procedimiento 1,
// expresados en UVT (art. 383/387 ET).
var (
	exemptPct             = decimal.RequireFromString("0.25")
	exemptCapUVT          = decimal.NewFromInt(240) // renta exenta 25%, tope mensual
	voluntaryPensionPct   = decimal.RequireFromString("0.30")
	prepaidMedicineCapUVT = decimal.NewFromInt(1)  // tope mensual medicina prepagada
	dependentsUVTEach     = decimal.NewFromInt(32) // por dependiente por mes
)

// RetentionInput entradas de la depuración mensual del procedimiento 1.
type RetentionInput struct {
	LaborIncome      decimal.Decimal // ingreso laboral gravable del mes
	MandatoryHealth  decimal.Decimal // aporte obligatorio salud del trabajador
	MandatoryPension decimal.Decimal // aporte obligatorio pensión + FSP
	VoluntaryPension decimal.Decimal // AFC y voluntarios (se topan al 30% del ingreso)
	HousingInterest  decimal.Decimal // intereses de vivienda, sin tope mensual propio
	PrepaidMedicine  decimal.Decimal
	Dependents       int
	OtherDeductions  decimal.Decimal
	UVT              decimal.Decimal
	Brackets         []entity.RetentionBracket
}

// RetentionResult desglose del cálculo para auditoría.
type RetentionResult struct {
	ExemptIncome    decimal.Decimal
	TotalDeductions decimal.Decimal
	TaxableBase     decimal.Decimal
	TaxableUVT      decimal.Decimal
	TaxUVT          decimal.Decimal
	Tax             decimal.Decimal
}

// RetentionProcedure1 calcula la retención en la fuente mensual por el
// procedimiento 1: renta exenta del 25% (tope 240 UVT), depuración de
// deducciones permitidas, conversión a UVT y tabla progresiva marginal.
func RetentionProcedure1(in RetentionInput) RetentionResult {
	var out RetentionResult
	if in.UVT.LessThanOrEqual(decimal.Zero) || in.LaborIncome.LessThanOrEqual(decimal.Zero) {
		return out
	}

	// Renta exenta: 25% del ingreso laboral, tope 240 UVT mensuales.
	exempt := in.LaborIncome.Mul(exemptPct)
	if cap := exemptCapUVT.Mul(in.UVT); exempt.GreaterThan(cap) {
		exempt = cap
	}
	out.ExemptIncome = exempt.Round(2)

	// Deducciones permitidas con sus topes.
	voluntary := in.VoluntaryPension
	if cap := in.LaborIncome.Mul(voluntaryPensionPct); voluntary.GreaterThan(cap) {
		voluntary = cap
	}
	prepaid := in.PrepaidMedicine
	if cap := prepaidMedicineCapUVT.Mul(in.UVT); prepaid.GreaterThan(cap) {
		prepaid = cap
	}
	dependents := decimal.NewFromInt(int64(in.Dependents)).Mul(dependentsUVTEach).Mul(in.UVT)

	deductions := in.MandatoryHealth.
		Add(in.MandatoryPension).
		Add(voluntary).
		Add(in.HousingInterest).
		Add(prepaid).
		Add(dependents).
		Add(in.OtherDeductions)
	out.TotalDeductions = deductions.Round(2)

	taxable := in.LaborIncome.Sub(out.ExemptIncome).Sub(out.TotalDeductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	out.TaxableBase = taxable.Round(2)
	out.TaxableUVT = taxable.Div(in.UVT)

	out.TaxUVT = BracketTax(out.TaxableUVT, in.Brackets)
	out.Tax = out.TaxUVT.Mul(in.UVT).Round(2)
	return out
}

// BracketTax acumula el impuesto en UVT tramo por tramo: cada tarifa es
// marginal, se aplica solo al exceso dentro de su tramo, nunca tarifa plana
// sobre toda la base. En el límite exacto de un tramo el impuesto es continuo
// (igual al acumulado del tramo inferior).
func BracketTax(taxableUVT decimal.Decimal, brackets []entity.RetentionBracket) decimal.Decimal {
	if taxableUVT.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := decimal.Zero
	for _, b := range brackets {
		if taxableUVT.LessThanOrEqual(b.FromUVT) {
			break
		}
		upper := taxableUVT
		if !b.ToUVT.IsZero() && upper.GreaterThan(b.ToUVT) {
			upper = b.ToUVT
		}
		excess := upper.Sub(b.FromUVT)
		if excess.IsNegative() {
			continue
		}
		tax = tax.Add(excess.Mul(b.RatePct.Div(cien)))
	}
	return tax
}

// DefaultBrackets es la tabla del art. 383 ET (7 tramos) usada como semilla;
// la versión vigente vive en la tabla retention_tables con vigencias.
func DefaultBrackets() []entity.RetentionBracket {
	mk := func(from, to, rate string) entity.RetentionBracket {
		return entity.RetentionBracket{
			FromUVT: decimal.RequireFromString(from),
			ToUVT:   decimal.RequireFromString(to),
			RatePct: decimal.RequireFromString(rate),
		}
	}
	return []entity.RetentionBracket{
		mk("0", "95", "0"),
		mk("95", "150", "19"),
		mk("150", "360", "28"),
		mk("360", "640", "33"),
		mk("640", "945", "35"),
		mk("945", "2300", "37"),
		mk("2300", "0", "39"),
	}
}
