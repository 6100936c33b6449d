package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkedItem es una línea de destajo: cantidad ejecutada de una tarea de obra
// por su precio unitario. Su suma entra a la nómina como total_items (es un
// devengado de entrada; el motor no la recalcula).
type WorkedItem struct {
	ID         string
	CompanyID  string
	EmployeeID string
	PeriodID   string
	TaskCode   string
	TaskName   string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
}

// Total devuelve cantidad × precio unitario redondeado a 2 decimales.
func (w *WorkedItem) Total() decimal.Decimal {
	return w.Quantity.Mul(w.UnitPrice).Round(2)
}
