package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/nomina-pro/internal/domain/payroll"
)

func TestContribuciones_SimetriaSalud(t *testing.T) {
	// empleado 4% + empleador 8.5% debe cerrar contra el total SALUD 12.5%
	// para cualquier IBC.
	for _, ibcStr := range []string{"1423500", "2500000", "10000000", "35587500"} {
		ibc := dec(ibcStr)
		empleado := payroll.ContributionOf(ibc, dec("0.04"))
		empleador := payroll.ContributionOf(ibc, dec("0.085"))
		total := payroll.ContributionOf(ibc, dec("0.125"))
		diff := empleado.Add(empleador).Sub(total).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")),
			"salud empleado+empleador debe sumar el total configurado (IBC %s)", ibcStr)
	}
}

func TestSolidarityFund_UmbralYEscalones(t *testing.T) {
	// Hasta 4 SMMLV no hay FSP.
	assert.True(t, payroll.SolidarityFund(smmlv2026.Mul(dec("4")), smmlv2026).IsZero())

	// Por encima de 4 SMMLV: 1% base.
	ibc := smmlv2026.Mul(dec("5"))
	assert.True(t, payroll.SolidarityFund(ibc, smmlv2026).Equal(ibc.Mul(dec("0.01")).Round(2)))

	// Escalones adicionales por ratio IBC/SMMLV; gana el más alto aplicable.
	casos := []struct {
		ratio string
		rate  string
	}{
		{"16", "0.012"},
		{"17", "0.014"},
		{"18", "0.016"},
		{"19", "0.018"},
		{"20", "0.02"},
		{"23", "0.02"}, // por encima de 20 sigue siendo +1.0%
	}
	for _, c := range casos {
		ibc := smmlv2026.Mul(dec(c.ratio))
		esperado := ibc.Mul(dec(c.rate)).Round(2)
		assert.True(t, payroll.SolidarityFund(ibc, smmlv2026).Equal(esperado),
			"FSP con IBC de %s SMMLV", c.ratio)
	}
}

func TestARL_TarifasPorClaseYDefaultConstruccion(t *testing.T) {
	ibc := dec("1000000")
	casos := []struct {
		clase    int
		esperado string
	}{
		{1, "5220.00"},
		{2, "10440.00"},
		{3, "24360.00"},
		{4, "43500.00"},
		{5, "69600.00"},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, payroll.ARL(ibc, c.clase).StringFixed(2), "clase %d", c.clase)
	}

	// Clase desconocida cotiza como V, el default del sector construcción.
	assert.Equal(t, "69600.00", payroll.ARL(ibc, 0).StringFixed(2))
	assert.Equal(t, "69600.00", payroll.ARL(ibc, 9).StringFixed(2))
}

func TestParafiscales_ExoneracionSENAICBFNoCaja(t *testing.T) {
	base := dec("2000000")

	sena := payroll.Parafiscal(base, dec("0.02"), false)
	icbf := payroll.Parafiscal(base, dec("0.03"), false)
	caja := payroll.Parafiscal(base, dec("0.04"), false)
	assert.Equal(t, "40000.00", sena.StringFixed(2))
	assert.Equal(t, "60000.00", icbf.StringFixed(2))
	assert.Equal(t, "80000.00", caja.StringFixed(2))

	// Empleador exonerado: SENA e ICBF en cero; la Caja se liquida siempre
	// (el motor nunca pasa exempt=true para Caja).
	assert.True(t, payroll.Parafiscal(base, dec("0.02"), true).IsZero())
	assert.True(t, payroll.Parafiscal(base, dec("0.03"), true).IsZero())
}

func TestEmployerTotalCost(t *testing.T) {
	got := payroll.EmployerTotalCost(
		dec("1623500"),
		[]decimal.Decimal{dec("120997.50"), dec("170820"), dec("99075.60")},
		[]decimal.Decimal{dec("135237.71"), dec("59359.95")},
	)
	assert.Equal(t, "2208990.76", got.StringFixed(2))
}
