package payroll

import "github.com/shopspring/decimal"

// ContributionOf aplica una fracción sobre el IBC redondeando a 2 decimales.
// Salud y pensión (empleado y empleador) son esto con la tarifa que resuelva
// la tabla de parámetros legales (4%, 4%, 8.5%, 12% hoy; nunca literales).
func ContributionOf(ibc, rate decimal.Decimal) decimal.Decimal {
	return ibc.Mul(rate).Round(2)
}

// fspTier es un escalón adicional del Fondo de Solidaridad Pensional.
type fspTier struct {
	minSMMLV   int64
	additional decimal.Decimal
}

// Escalones adicionales FSP (Ley 797/2003 art. 8): sobre 16 SMMLV se suma al
// 1% base un marginal por rango; gana el escalón aplicable más alto.
var fspTiers = []fspTier{
	{20, decimal.RequireFromString("0.010")},
	{19, decimal.RequireFromString("0.008")},
	{18, decimal.RequireFromString("0.006")},
	{17, decimal.RequireFromString("0.004")},
	{16, decimal.RequireFromString("0.002")},
}

// SolidarityFund calcula el aporte del trabajador al Fondo de Solidaridad
// Pensional: cero hasta 4 SMMLV de IBC; de ahí en adelante 1% más el
// adicional del escalón por ratio IBC/SMMLV.
func SolidarityFund(ibc, minimumWage decimal.Decimal) decimal.Decimal {
	if minimumWage.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if ibc.LessThanOrEqual(minimumWage.Mul(decimal.NewFromInt(4))) {
		return decimal.Zero
	}
	rate := decimal.RequireFromString("0.01")
	for _, tier := range fspTiers {
		if ibc.GreaterThanOrEqual(minimumWage.Mul(decimal.NewFromInt(tier.minSMMLV))) {
			rate = rate.Add(tier.additional)
			break
		}
	}
	return ibc.Mul(rate).Round(2)
}

// Tarifas ARL por clase de riesgo (Decreto 1607/2002). Clase V es el default
// del sector construcción.
var arlRates = map[int]decimal.Decimal{
	1: decimal.RequireFromString("0.00522"),
	2: decimal.RequireFromString("0.01044"),
	3: decimal.RequireFromString("0.02436"),
	4: decimal.RequireFromString("0.04350"),
	5: decimal.RequireFromString("0.06960"),
}

// ARL calcula el aporte patronal de riesgos laborales según la clase 1..5.
// Clase desconocida cotiza como V: en obra, ante la duda, el riesgo más alto.
func ARL(ibc decimal.Decimal, riskClass int) decimal.Decimal {
	rate, ok := arlRates[riskClass]
	if !ok {
		rate = arlRates[5]
	}
	return ibc.Mul(rate).Round(2)
}

// ARLRate expone la tarifa por clase para reportes (PILA).
func ARLRate(riskClass int) decimal.Decimal {
	if rate, ok := arlRates[riskClass]; ok {
		return rate
	}
	return arlRates[5]
}

// Parafiscal liquida un aporte parafiscal (SENA, ICBF, Caja) sobre la base.
// exempt pone en cero SENA e ICBF para empleadores exonerados; la Caja de
// Compensación nunca se exonera, el caller pasa exempt=false para ella.
func Parafiscal(base, rate decimal.Decimal, exempt bool) decimal.Decimal {
	if exempt {
		return decimal.Zero
	}
	return base.Mul(rate).Round(2)
}
