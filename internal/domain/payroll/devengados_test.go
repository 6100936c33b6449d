package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/nomina-pro/internal/domain/payroll"
)

// Valores legales 2026 usados como vectores de prueba (en producción viven
// en la tabla legal_parameters, nunca compilados).
var (
	smmlv2026 = decimal.RequireFromString("1423500")
	aux2026   = decimal.RequireFromString("200000")
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBasicPay_ProrrateoIdempotente(t *testing.T) {
	salario := dec("1500000")

	// Mes completo devuelve el salario sin tocar.
	assert.True(t, payroll.BasicPay(salario, 30, 30).Equal(salario))
	// Más días que el mes tampoco paga de más.
	assert.True(t, payroll.BasicPay(salario, 31, 30).Equal(salario))
	// Cero días, cero pago.
	assert.True(t, payroll.BasicPay(salario, 0, 30).IsZero())
	// Quincena.
	assert.Equal(t, "750000.00", payroll.BasicPay(salario, 15, 30).StringFixed(2))
}

func TestTransportAllowance_FronteraDosSalariosMinimos(t *testing.T) {
	dosSMMLV := smmlv2026.Mul(dec("2"))

	// Exactamente 2 SMMLV todavía recibe auxilio.
	got := payroll.TransportAllowance(dosSMMLV, aux2026, smmlv2026, 30, 30)
	assert.True(t, got.GreaterThan(decimal.Zero), "con salario == 2 SMMLV el auxilio aplica")
	assert.True(t, got.Equal(aux2026))

	// Un peso por encima del tope lo pierde por completo.
	got = payroll.TransportAllowance(dosSMMLV.Add(dec("1")), aux2026, smmlv2026, 30, 30)
	assert.True(t, got.IsZero(), "un peso por encima de 2 SMMLV pierde el auxilio")
}

func TestTransportAllowance_Prorrateo(t *testing.T) {
	got := payroll.TransportAllowance(smmlv2026, aux2026, smmlv2026, 15, 30)
	assert.Equal(t, "100000.00", got.StringFixed(2))
}

func TestRecargos_TarifaHoraY240(t *testing.T) {
	// Salario 1.440.000 → hora ordinaria exacta de 6.000 (1.440.000/240).
	salario := dec("1440000")
	horas := dec("10")

	assert.Equal(t, "75000.00", payroll.OvertimeDay(salario, horas).StringFixed(2), "extra diurna 125%")
	assert.Equal(t, "105000.00", payroll.OvertimeNight(salario, horas).StringFixed(2), "extra nocturna 175%")
	assert.Equal(t, "21000.00", payroll.OrdinaryNight(salario, horas).StringFixed(2), "recargo nocturno 35%")
	assert.Equal(t, "45000.00", payroll.SundaySurcharge(salario, horas).StringFixed(2), "dominical 75%")
}

func TestIBC_ExcluyeAuxilioYCapa25SMMLV(t *testing.T) {
	// El auxilio no entra: la firma no lo recibe; básico+extras+bonos+comisiones.
	got := payroll.IBC(dec("2000000"), dec("300000"), dec("100000"), dec("50000"), smmlv2026)
	assert.Equal(t, "2450000.00", got.StringFixed(2))

	// Techo duro de 25 SMMLV.
	tope := smmlv2026.Mul(dec("25"))
	got = payroll.IBC(dec("50000000"), dec("0"), dec("0"), dec("0"), smmlv2026)
	assert.True(t, got.Equal(tope), "IBC debe quedar exactamente en el tope de 25 SMMLV")

	// Por debajo del techo no se toca.
	got = payroll.IBC(tope.Sub(dec("1")), dec("0"), dec("0"), dec("0"), smmlv2026)
	assert.True(t, got.LessThan(tope))
}

func TestProvisiones_BasesYAsimetriaVacaciones(t *testing.T) {
	basico := dec("1423500")
	aux := dec("200000")
	extras := dec("100000")

	base := payroll.IntegralBase(basico, aux, extras)
	assert.Equal(t, "1723500", base.String())

	assert.Equal(t, "143567.55", payroll.Cesantias(base, payroll.DefaultCesantiasRate).StringFixed(2))
	assert.Equal(t, "143567.55", payroll.Prima(base, payroll.DefaultPrimaRate).StringFixed(2))
	// Vacaciones sobre el básico solamente: el auxilio queda por fuera.
	assert.Equal(t, "59359.95", payroll.Vacaciones(basico, payroll.DefaultVacacionesRate).StringFixed(2))
	// Intereses de cesantías sobre el saldo acumulado.
	assert.Equal(t, "5000.00", payroll.InteresesCesantias(dec("500000"), payroll.DefaultIntCesantiasRate).StringFixed(2))
}

func TestNetPay_IdentidadYNegativo(t *testing.T) {
	net, err := payroll.NetPay(dec("1623500"), dec("113880"))
	assert.NoError(t, err)
	assert.Equal(t, "1509620.00", net.StringFixed(2))

	// Neto negativo es violación de integridad, jamás se recorta a cero.
	_, err = payroll.NetPay(dec("100"), dec("200"))
	assert.Error(t, err)
}
