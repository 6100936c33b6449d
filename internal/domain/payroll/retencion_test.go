package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/nomina-pro/internal/domain/payroll"
)

var uvt2026 = dec("52374")

func TestBracketTax_AcumulacionMarginal(t *testing.T) {
	brackets := payroll.DefaultBrackets()

	// Debajo del primer umbral no hay impuesto.
	assert.True(t, payroll.BracketTax(dec("80"), brackets).IsZero())

	// 120 UVT: (120-95) × 19% = 4.75 UVT. Marginal, no tarifa plana.
	got := payroll.BracketTax(dec("120"), brackets)
	assert.Equal(t, "4.75", got.StringFixed(2))

	// 200 UVT: (150-95)×19% + (200-150)×28% = 10.45 + 14 = 24.45 UVT.
	got = payroll.BracketTax(dec("200"), brackets)
	assert.Equal(t, "24.45", got.StringFixed(2))

	// Último tramo abierto: 2500 UVT entra al 39% sobre el exceso de 2300.
	got = payroll.BracketTax(dec("2500"), brackets)
	// (150-95)×0.19 + (360-150)×0.28 + (640-360)×0.33 + (945-640)×0.35 +
	// (2300-945)×0.37 + (2500-2300)×0.39
	esperado := dec("55").Mul(dec("0.19")).
		Add(dec("210").Mul(dec("0.28"))).
		Add(dec("280").Mul(dec("0.33"))).
		Add(dec("305").Mul(dec("0.35"))).
		Add(dec("1355").Mul(dec("0.37"))).
		Add(dec("200").Mul(dec("0.39")))
	assert.True(t, got.Equal(esperado))
}

func TestBracketTax_ContinuidadEnLaFrontera(t *testing.T) {
	brackets := payroll.DefaultBrackets()

	// En el límite exacto de 95 UVT el impuesto debe ser el del tramo
	// inferior (cero): sin salto de discontinuidad.
	enFrontera := payroll.BracketTax(dec("95"), brackets)
	assert.True(t, enFrontera.IsZero(), "en 95 UVT exactos el impuesto es 0")

	// Un epsilon por encima apenas grava el exceso.
	got := payroll.BracketTax(dec("95.01"), brackets)
	assert.True(t, got.LessThan(dec("0.01")), "inmediatamente después de la frontera el impuesto es marginal")

	// Continuidad en 150: acumulado por la izquierda == acumulado exacto.
	izq := payroll.BracketTax(dec("149.999"), brackets)
	exacto := payroll.BracketTax(dec("150"), brackets)
	assert.True(t, exacto.Sub(izq).Abs().LessThan(dec("0.001")))
}

func TestRetentionProcedure1_Depuracion(t *testing.T) {
	// Ingreso bajo: la renta exenta y los aportes obligatorios dejan la base
	// por debajo de 95 UVT → retención cero.
	res := payroll.RetentionProcedure1(payroll.RetentionInput{
		LaborIncome:      dec("2000000"),
		MandatoryHealth:  dec("80000"),
		MandatoryPension: dec("80000"),
		UVT:              uvt2026,
		Brackets:         payroll.DefaultBrackets(),
	})
	assert.True(t, res.Tax.IsZero(), "un salario de 2 millones no genera retención")

	// Ingreso alto sí genera retención y el desglose es coherente.
	res = payroll.RetentionProcedure1(payroll.RetentionInput{
		LaborIncome:      dec("20000000"),
		MandatoryHealth:  dec("800000"),
		MandatoryPension: dec("800000"),
		UVT:              uvt2026,
		Brackets:         payroll.DefaultBrackets(),
	})
	assert.True(t, res.Tax.GreaterThan(decimal.Zero))
	assert.True(t, res.ExemptIncome.Equal(dec("5000000")), "renta exenta 25% sin llegar al tope de 240 UVT")
	assert.True(t, res.TaxableBase.Equal(dec("13400000")))
}

func TestRetentionProcedure1_Topes(t *testing.T) {
	// Renta exenta topada a 240 UVT mensuales.
	res := payroll.RetentionProcedure1(payroll.RetentionInput{
		LaborIncome: dec("100000000"),
		UVT:         uvt2026,
		Brackets:    payroll.DefaultBrackets(),
	})
	topeExenta := dec("240").Mul(uvt2026)
	assert.True(t, res.ExemptIncome.Equal(topeExenta), "la exenta se topa en 240 UVT")

	// Pensión voluntaria topada al 30% del ingreso; prepagada a 1 UVT/mes;
	// dependientes a 32 UVT cada uno.
	res = payroll.RetentionProcedure1(payroll.RetentionInput{
		LaborIncome:      dec("10000000"),
		VoluntaryPension: dec("9000000"),
		PrepaidMedicine:  dec("500000"),
		Dependents:       2,
		UVT:              uvt2026,
		Brackets:         payroll.DefaultBrackets(),
	})
	esperado := dec("3000000"). // voluntaria topada al 30%
					Add(uvt2026).                // prepagada topada a 1 UVT
					Add(dec("64").Mul(uvt2026)). // 2 dependientes × 32 UVT
					Round(2)
	assert.True(t, res.TotalDeductions.Equal(esperado),
		"deducciones %s, esperado %s", res.TotalDeductions, esperado)
}
