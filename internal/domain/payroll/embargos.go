package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// GarnishmentApplication es lo retenido a un embargo en la corrida.
type GarnishmentApplication struct {
	Garnishment *entity.JudicialGarnishment
	Amount      decimal.Decimal
}

// ApplyGarnishments aplica los embargos judiciales activos contra el neto:
//
//  1. Ordena por prelación legal (alimentos > cooperativa > fiscal >
//     ejecutivo) y, a igual clase, por fecha de notificación.
//  2. Calcula el embargable: neto menos un SMMLV, con piso en cero.
//  3. Descuenta cada embargo contra el embargable restante: su porcentaje o
//     monto fijo, topado por el límite de su clase (50% alimentos, 20% las
//     demás), por lo que quede embargable y por el saldo de la obligación.
//
// Como efecto colateral actualiza saldo y estado de cada embargo aplicado.
func ApplyGarnishments(netPay, minimumWage decimal.Decimal, garnishments []*entity.JudicialGarnishment) (decimal.Decimal, []GarnishmentApplication) {
	active := make([]*entity.JudicialGarnishment, 0, len(garnishments))
	for _, g := range garnishments {
		if g.Status == entity.GarnishmentActive && g.Balance.GreaterThan(decimal.Zero) {
			active = append(active, g)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority() != active[j].Priority() {
			return active[i].Priority() < active[j].Priority()
		}
		return active[i].NotificationDate.Before(active[j].NotificationDate)
	})

	embargable := netPay.Sub(minimumWage)
	if embargable.IsNegative() {
		embargable = decimal.Zero
	}

	total := decimal.Zero
	remaining := embargable
	var applied []GarnishmentApplication
	for _, g := range active {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		var requested decimal.Decimal
		if g.Percentage.GreaterThan(decimal.Zero) {
			requested = embargable.Mul(g.Percentage.Div(cien))
		} else {
			requested = g.FixedAmount
		}
		// Tope legal de la clase sobre el embargable total.
		if cap := embargable.Mul(g.CapPct()); requested.GreaterThan(cap) {
			requested = cap
		}
		if requested.GreaterThan(remaining) {
			requested = remaining
		}
		if requested.GreaterThan(g.Balance) {
			requested = g.Balance
		}
		requested = requested.Round(2)
		if requested.LessThanOrEqual(decimal.Zero) {
			continue
		}
		g.ApplyDeduction(requested)
		remaining = remaining.Sub(requested)
		total = total.Add(requested)
		applied = append(applied, GarnishmentApplication{Garnishment: g, Amount: requested})
	}
	return total.Round(2), applied
}
