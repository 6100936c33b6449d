package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RetentionBracket es un tramo de la tabla progresiva de retención en la
// fuente (art. 383 ET), expresado en UVT. La tarifa es marginal: se aplica
// solo al exceso dentro del tramo.
type RetentionBracket struct {
	FromUVT decimal.Decimal
	ToUVT   decimal.Decimal // cero = sin tope (último tramo)
	RatePct decimal.Decimal // tarifa marginal, ej. 19
}

// RetentionTable es la versión vigente de la tabla de tramos, con la misma
// semántica de vigencias que los parámetros legales.
type RetentionTable struct {
	ID            string
	Description   string
	Brackets      []RetentionBracket
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Active        bool
	CreatedAt     time.Time
}

// InEffect indica si la tabla está vigente en la fecha dada.
func (t *RetentionTable) InEffect(asOf time.Time) bool {
	if !t.Active {
		return false
	}
	if asOf.Before(t.EffectiveFrom) {
		return false
	}
	if t.EffectiveTo != nil && asOf.After(*t.EffectiveTo) {
		return false
	}
	return true
}
