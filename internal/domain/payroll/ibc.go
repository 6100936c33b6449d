package payroll

import "github.com/shopspring/decimal"

// topeIBCSMMLV tope legal del IBC: 25 salarios mínimos (Ley 797/2003).
var topeIBCSMMLV = decimal.NewFromInt(25)

// IBC calcula el Ingreso Base de Cotización: básico + extras + bonos +
// comisiones. El auxilio de transporte queda excluido por diseño (no es
// factor salarial para cotización). El resultado se limita a 25 SMMLV: lo
// que exceda el techo queda por fuera de toda base de aportes.
func IBC(basic, overtime, bonuses, commissions, minimumWage decimal.Decimal) decimal.Decimal {
	base := basic.Add(overtime).Add(bonuses).Add(commissions)
	cap := minimumWage.Mul(topeIBCSMMLV)
	if minimumWage.GreaterThan(decimal.Zero) && base.GreaterThan(cap) {
		return cap.Round(2)
	}
	return base.Round(2)
}

// IBCCap devuelve el techo vigente del IBC para un salario mínimo dado.
func IBCCap(minimumWage decimal.Decimal) decimal.Decimal {
	return minimumWage.Mul(topeIBCSMMLV)
}
