// Package payroll contiene las funciones de cálculo puras de la nómina
// colombiana: sin I/O, entradas explícitas, decimales redondeados half-up a
// 2 decimales. El motor (internal/application/payroll) las orquesta en el
// orden legal; aquí no hay estado.
package payroll

import "github.com/shopspring/decimal"

var (
	dos         = decimal.NewFromInt(2)
	cien        = decimal.NewFromInt(100)
	horasMes    = decimal.NewFromInt(240) // 30 días × 8 horas
	diasMesBase = 30

	// Recargos estatutarios sobre la hora ordinaria (CST arts. 168-179).
	pctExtraDiurna     = decimal.RequireFromString("0.25")
	pctExtraNocturna   = decimal.RequireFromString("0.75")
	pctRecargoNocturno = decimal.RequireFromString("0.35")
	pctDominical       = decimal.RequireFromString("0.75")
)

// BasicPay prorratea el salario mensual por días trabajados sobre el mes
// comercial de 30 días. Con días >= mes devuelve el salario completo.
func BasicPay(monthlySalary decimal.Decimal, daysWorked, daysInMonth int) decimal.Decimal {
	if daysInMonth <= 0 {
		daysInMonth = diasMesBase
	}
	if daysWorked >= daysInMonth {
		return monthlySalary.Round(2)
	}
	if daysWorked <= 0 {
		return decimal.Zero
	}
	return monthlySalary.
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Mul(decimal.NewFromInt(int64(daysWorked))).
		Round(2)
}

// TransportAllowance devuelve el auxilio de transporte prorrateado. Solo
// aplica para salarios hasta 2 SMMLV; por encima devuelve cero.
func TransportAllowance(monthlySalary, allowance, minimumWage decimal.Decimal, daysWorked, daysInMonth int) decimal.Decimal {
	if monthlySalary.GreaterThan(minimumWage.Mul(dos)) {
		return decimal.Zero
	}
	return BasicPay(allowance, daysWorked, daysInMonth)
}

// HourlyRate devuelve la tarifa de hora ordinaria: salario mensual / 240.
func HourlyRate(monthlySalary decimal.Decimal) decimal.Decimal {
	return monthlySalary.Div(horasMes)
}

// OvertimeDay liquida horas extra diurnas: hora ordinaria + recargo del 25%.
func OvertimeDay(monthlySalary, hours decimal.Decimal) decimal.Decimal {
	return HourlyRate(monthlySalary).Mul(decimal.NewFromInt(1).Add(pctExtraDiurna)).Mul(hours).Round(2)
}

// OvertimeNight liquida horas extra nocturnas: hora ordinaria + recargo del 75%.
func OvertimeNight(monthlySalary, hours decimal.Decimal) decimal.Decimal {
	return HourlyRate(monthlySalary).Mul(decimal.NewFromInt(1).Add(pctExtraNocturna)).Mul(hours).Round(2)
}

// OrdinaryNight liquida el recargo nocturno del 35%: la hora ya está pagada
// en el básico, solo se reconoce el recargo.
func OrdinaryNight(monthlySalary, hours decimal.Decimal) decimal.Decimal {
	return HourlyRate(monthlySalary).Mul(pctRecargoNocturno).Mul(hours).Round(2)
}

// SundaySurcharge liquida el recargo dominical/festivo del 75%.
func SundaySurcharge(monthlySalary, hours decimal.Decimal) decimal.Decimal {
	return HourlyRate(monthlySalary).Mul(pctDominical).Mul(hours).Round(2)
}
