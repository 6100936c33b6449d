package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un préstamo a empleado.
const (
	LoanActive    = "ACTIVO"
	LoanPaidOff   = "PAGADO"
	LoanSuspended = "SUSPENDIDO"
)

// Loan es un préstamo de la empresa al trabajador que se descuenta por cuotas
// fijas en cada nómina hasta agotar el saldo.
type Loan struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Amount      decimal.Decimal
	Installment decimal.Decimal // cuota fija por período
	Balance     decimal.Decimal // saldo pendiente
	StartDate   time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InstallmentFor devuelve la cuota a aplicar en el período: la cuota fija
// limitada al saldo pendiente. Cero si el préstamo no está activo.
func (l *Loan) InstallmentFor() decimal.Decimal {
	if l.Status != LoanActive || l.Balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if l.Installment.GreaterThan(l.Balance) {
		return l.Balance
	}
	return l.Installment
}

// ApplyInstallment descuenta la cuota del saldo y marca el préstamo como
// pagado al llegar a cero.
func (l *Loan) ApplyInstallment(amount decimal.Decimal) {
	l.Balance = l.Balance.Sub(amount)
	if l.Balance.LessThanOrEqual(decimal.Zero) {
		l.Balance = decimal.Zero
		l.Status = LoanPaidOff
	}
	l.UpdatedAt = time.Now()
}

// RestoreInstallment devuelve una cuota al saldo. Es el reverso exacto de
// ApplyInstallment: lo usa el motor al recalcular un período para que la
// cuota no se descuente dos veces. Reactiva el préstamo si la cuota revertida
// lo había dejado pagado.
func (l *Loan) RestoreInstallment(amount decimal.Decimal) {
	l.Balance = l.Balance.Add(amount)
	if l.Status == LoanPaidOff && l.Balance.GreaterThan(decimal.Zero) {
		l.Status = LoanActive
	}
	l.UpdatedAt = time.Now()
}
