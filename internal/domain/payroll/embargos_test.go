package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/payroll"
)

func embargo(class, pct, balance string, notified time.Time) *entity.JudicialGarnishment {
	return &entity.JudicialGarnishment{
		ID:               class + "-" + pct,
		Class:            class,
		Percentage:       decimal.RequireFromString(pct),
		Balance:          decimal.RequireFromString(balance),
		TotalDebt:        decimal.RequireFromString(balance),
		NotificationDate: notified,
		Status:           entity.GarnishmentActive,
	}
}

func TestApplyGarnishments_EmbargableYTope50(t *testing.T) {
	// Vector del caso de uso: neto 3.000.000, SMMLV 1.423.500, un embargo de
	// alimentos al 50% → embargable 1.576.500, descuento 788.250.
	g := embargo(entity.GarnishmentAlimentos, "50", "10000000", time.Now())

	total, applied := payroll.ApplyGarnishments(dec("3000000"), smmlv2026, []*entity.JudicialGarnishment{g})

	require.Len(t, applied, 1)
	assert.Equal(t, "788250.00", total.StringFixed(2))
	assert.Equal(t, "788250.00", applied[0].Amount.StringFixed(2))
	assert.Equal(t, "9211750.00", g.Balance.StringFixed(2), "el saldo del embargo baja con lo retenido")
}

func TestApplyGarnishments_PrelacionAlimentosAntesQueEjecutivo(t *testing.T) {
	// Ambos piden más de lo embargable: alimentos se satisface primero (hasta
	// su tope del 50%) antes de que el ejecutivo reciba un peso (tope 20%).
	alimentos := embargo(entity.GarnishmentAlimentos, "50", "10000000", time.Now())
	ejecutivo := embargo(entity.GarnishmentEjecutivo, "40", "10000000", time.Now().Add(-time.Hour))

	total, applied := payroll.ApplyGarnishments(dec("3000000"), smmlv2026,
		[]*entity.JudicialGarnishment{ejecutivo, alimentos}) // orden de entrada irrelevante

	require.Len(t, applied, 2)
	assert.Same(t, alimentos, applied[0].Garnishment, "alimentos va primero por prelación legal")
	assert.Equal(t, "788250.00", applied[0].Amount.StringFixed(2), "alimentos recibe su 50% completo")
	// Ejecutivo pidió 40% pero su clase se topa al 20% del embargable.
	assert.Equal(t, "315300.00", applied[1].Amount.StringFixed(2))
	assert.Equal(t, "1103550.00", total.StringFixed(2))
}

func TestApplyGarnishments_MismaClaseOrdenaPorNotificacion(t *testing.T) {
	viejo := embargo(entity.GarnishmentEjecutivo, "20", "10000000", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	nuevo := embargo(entity.GarnishmentEjecutivo, "20", "10000000", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	viejo.ID, nuevo.ID = "viejo", "nuevo"

	_, applied := payroll.ApplyGarnishments(dec("3000000"), smmlv2026,
		[]*entity.JudicialGarnishment{nuevo, viejo})

	require.NotEmpty(t, applied)
	assert.Equal(t, "viejo", applied[0].Garnishment.ID, "a igual clase se atiende la notificación más antigua")
}

func TestApplyGarnishments_TopadoPorSaldo(t *testing.T) {
	// El saldo de la obligación es menor que el 50% del embargable: se retiene
	// solo el saldo y el embargo queda completado.
	g := embargo(entity.GarnishmentAlimentos, "50", "100000", time.Now())

	total, _ := payroll.ApplyGarnishments(dec("3000000"), smmlv2026, []*entity.JudicialGarnishment{g})

	assert.Equal(t, "100000.00", total.StringFixed(2))
	assert.Equal(t, entity.GarnishmentCompleted, g.Status)
	assert.True(t, g.Balance.IsZero())
}

func TestApplyGarnishments_NetoBajoUnSMMLVNoEmbarga(t *testing.T) {
	g := embargo(entity.GarnishmentAlimentos, "50", "1000000", time.Now())

	total, applied := payroll.ApplyGarnishments(dec("1400000"), smmlv2026, []*entity.JudicialGarnishment{g})

	assert.True(t, total.IsZero(), "por debajo de un SMMLV no hay porción embargable")
	assert.Empty(t, applied)
}

func TestApplyGarnishments_MontoFijo(t *testing.T) {
	g := embargo(entity.GarnishmentFiscal, "0", "5000000", time.Now())
	g.FixedAmount = dec("200000")

	total, _ := payroll.ApplyGarnishments(dec("3000000"), smmlv2026, []*entity.JudicialGarnishment{g})
	assert.Equal(t, "200000.00", total.StringFixed(2))
}
