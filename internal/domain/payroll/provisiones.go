package payroll

import "github.com/shopspring/decimal"

// Tarifas de provisión mensual por defecto: 8.33% cesantías y prima (un mes
// por año), 1% mensual de intereses sobre saldo de cesantías, 4.17%
// vacaciones (quince días por año). Sobreescribibles desde la tabla de
// parámetros legales.
var (
	DefaultCesantiasRate    = decimal.RequireFromString("0.0833")
	DefaultIntCesantiasRate = decimal.RequireFromString("0.01")
	DefaultPrimaRate        = decimal.RequireFromString("0.0833")
	DefaultVacacionesRate   = decimal.RequireFromString("0.0417")
)

// IntegralBase arma la base prestacional: básico + auxilio de transporte +
// horas extra. A diferencia del IBC, aquí el auxilio sí cuenta (Ley 52/1975).
func IntegralBase(basic, transportAllowance, overtime decimal.Decimal) decimal.Decimal {
	return basic.Add(transportAllowance).Add(overtime)
}

// Cesantias provisiona el ahorro de cesantías del período.
func Cesantias(integralBase, rate decimal.Decimal) decimal.Decimal {
	return integralBase.Mul(rate).Round(2)
}

// InteresesCesantias provisiona el interés mensual sobre el saldo acumulado
// de cesantías (12% anual = 1% mes).
func InteresesCesantias(accruedBalance, monthlyRate decimal.Decimal) decimal.Decimal {
	return accruedBalance.Mul(monthlyRate).Round(2)
}

// Prima provisiona la prima de servicios del período.
func Prima(integralBase, rate decimal.Decimal) decimal.Decimal {
	return integralBase.Mul(rate).Round(2)
}

// Vacaciones provisiona las vacaciones sobre el básico únicamente: el auxilio
// de transporte se excluye porque en vacaciones no hay desplazamiento
// (asimetría deliberada frente a las otras tres provisiones).
func Vacaciones(basicOnly, rate decimal.Decimal) decimal.Decimal {
	return basicOnly.Mul(rate).Round(2)
}
