package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de embargo judicial en orden de prelación legal.
const (
	GarnishmentAlimentos   = "ALIMENTOS"   // prioridad 1: hasta 50% del embargable
	GarnishmentCooperativa = "COOPERATIVA" // prioridad 2
	GarnishmentFiscal      = "FISCAL"      // prioridad 3
	GarnishmentEjecutivo   = "EJECUTIVO"   // prioridad 4: hasta 20% del embargable
)

// Estados del embargo.
const (
	GarnishmentActive    = "ACTIVO"
	GarnishmentCompleted = "COMPLETADO"
	GarnishmentSuspended = "SUSPENDIDO"
)

// JudicialGarnishment es un embargo judicial de salario ordenado por un
// juzgado. Se aplica contra la porción embargable del neto (neto menos un
// SMMLV) respetando la prelación legal y los topes porcentuales por clase.
type JudicialGarnishment struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	Class            string // ALIMENTOS, COOPERATIVA, FISCAL, EJECUTIVO
	CourtOrder       string
	NotificationDate time.Time
	// Percentage porcentaje ordenado sobre el embargable (0 si es monto fijo).
	Percentage decimal.Decimal
	// FixedAmount monto fijo por período (0 si es porcentual).
	FixedAmount decimal.Decimal
	TotalDebt   decimal.Decimal
	Balance     decimal.Decimal // saldo pendiente de la obligación
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Priority devuelve la prelación legal (menor = primero).
func (g *JudicialGarnishment) Priority() int {
	switch g.Class {
	case GarnishmentAlimentos:
		return 1
	case GarnishmentCooperativa:
		return 2
	case GarnishmentFiscal:
		return 3
	default:
		return 4
	}
}

// CapPct devuelve el tope porcentual legal sobre el embargable según la clase:
// alimentos hasta 50%, las demás clases hasta 20%.
func (g *JudicialGarnishment) CapPct() decimal.Decimal {
	if g.Class == GarnishmentAlimentos {
		return decimal.RequireFromString("0.50")
	}
	return decimal.RequireFromString("0.20")
}

// Validate rechaza embargos sin clase ni cuantía.
func (g *JudicialGarnishment) Validate() error {
	switch g.Class {
	case GarnishmentAlimentos, GarnishmentCooperativa, GarnishmentFiscal, GarnishmentEjecutivo:
	default:
		return ErrGarnishmentInvalid
	}
	if g.Percentage.LessThanOrEqual(decimal.Zero) && g.FixedAmount.LessThanOrEqual(decimal.Zero) {
		return ErrGarnishmentInvalid
	}
	return nil
}

// ApplyDeduction descuenta lo retenido del saldo y marca el embargo como
// completado cuando la obligación queda en cero.
func (g *JudicialGarnishment) ApplyDeduction(amount decimal.Decimal) {
	g.Balance = g.Balance.Sub(amount)
	if g.Balance.LessThanOrEqual(decimal.Zero) {
		g.Balance = decimal.Zero
		g.Status = GarnishmentCompleted
	}
	g.UpdatedAt = time.Now()
}

// RestoreDeduction devuelve al saldo lo retenido en una corrida que se va a
// repetir, reactivando el embargo si esa retención lo había completado.
func (g *JudicialGarnishment) RestoreDeduction(amount decimal.Decimal) {
	g.Balance = g.Balance.Add(amount)
	if g.Status == GarnishmentCompleted && g.Balance.GreaterThan(decimal.Zero) {
		g.Status = GarnishmentActive
	}
	g.UpdatedAt = time.Now()
}
