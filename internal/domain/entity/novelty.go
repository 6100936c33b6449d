package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de novedad del período.
const (
	NoveltyAbsence       = "AUSENCIA"        // ausencia no remunerada: descuenta días
	NoveltyLeave         = "LICENCIA_NO_REM" // licencia no remunerada: descuenta días
	NoveltyOvertimeDay   = "HORA_EXTRA_DIURNA"
	NoveltyOvertimeNight = "HORA_EXTRA_NOCTURNA"
	NoveltyNightWork     = "RECARGO_NOCTURNO"
	NoveltySundayWork    = "DOMINICAL_FESTIVO"
)

// Novelty registra un hecho del período que afecta el cálculo: días de
// ausencia que suspenden pago, u horas extra/recargos trabajados.
type Novelty struct {
	ID         string
	CompanyID  string
	EmployeeID string
	PeriodID   string
	Type       string
	Days       int             // para ausencias/licencias
	Hours      decimal.Decimal // para extras y recargos
	Notes      string
	CreatedAt  time.Time
}
