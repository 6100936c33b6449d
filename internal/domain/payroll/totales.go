package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

// TotalEarned suma los devengados a 2 decimales.
func TotalEarned(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total.Round(2)
}

// TotalDeducted suma las deducciones a 2 decimales.
func TotalDeducted(amounts ...decimal.Decimal) decimal.Decimal {
	return TotalEarned(amounts...)
}

// NetPay calcula el neto a pagar. Un neto negativo no es un resultado de
// negocio válido sino un dato mal configurado (cuotas de préstamo por encima
// de los devengados): se devuelve ErrNetoNegativo y el caller aborta sin
// persistir, nunca se recorta a cero.
func NetPay(totalEarned, totalDeducted decimal.Decimal) (decimal.Decimal, error) {
	net := totalEarned.Sub(totalDeducted).Round(2)
	if net.IsNegative() {
		return decimal.Zero, domain.ErrNetoNegativo
	}
	return net, nil
}

// EmployerTotalCost calcula el costo total del empleador: devengados más
// aportes patronales más provisiones.
func EmployerTotalCost(totalEarned decimal.Decimal, employerContributions, provisions []decimal.Decimal) decimal.Decimal {
	total := totalEarned
	for _, c := range employerContributions {
		total = total.Add(c)
	}
	for _, p := range provisions {
		total = total.Add(p)
	}
	return total.Round(2)
}
