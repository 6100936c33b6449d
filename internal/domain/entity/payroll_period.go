package entity

import "time"

// Estados del período de nómina.
const (
	PeriodOpen     = "ABIERTO"
	PeriodClosed   = "CERRADO"
	PeriodApproved = "APROBADO"
	PeriodPaid     = "PAGADO"
)

// PayrollPeriod es un período de liquidación (quincenal o mensual). Los
// períodos de una misma empresa no se solapan; lo valida el repositorio
// contra los rangos existentes antes de insertar.
type PayrollPeriod struct {
	ID          string
	CompanyID   string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	PaymentDate time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate verifica coherencia de fechas.
func (p *PayrollPeriod) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return ErrPeriodInvalid
	}
	if p.PaymentDate.Before(p.StartDate) {
		return ErrPeriodInvalid
	}
	return nil
}

// Days devuelve los días calendario del período, a tope de 30 (mes comercial).
func (p *PayrollPeriod) Days() int {
	d := int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
	if d > 30 {
		return 30
	}
	if d < 0 {
		return 0
	}
	return d
}

// Overlaps indica si dos períodos se cruzan en el tiempo.
func (p *PayrollPeriod) Overlaps(other *PayrollPeriod) bool {
	return !p.EndDate.Before(other.StartDate) && !other.EndDate.Before(p.StartDate)
}
