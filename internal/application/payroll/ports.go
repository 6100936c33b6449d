package payroll

import (
	"context"

	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// TxRunner ejecuta el cálculo de una nómina dentro de una transacción: los
// pasos 1 a 11 del motor son atómicos, una falla a mitad de camino (por
// ejemplo neto negativo) no deja líneas de detalle huérfanas.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		recordRepo repository.PayrollRecordRepository,
		loanRepo repository.LoanRepository,
		garnishmentRepo repository.GarnishmentRepository,
		workedItemRepo repository.WorkedItemRepository,
		noveltyRepo repository.NoveltyRepository,
	) error) error
}

// Config opciones del motor.
type Config struct {
	// StrictParameters cambia la política de parámetro faltante: por defecto
	// la ausencia de configuración aporta cero en silencio (regla de negocio
	// deliberada); en modo estricto la falta de SALUD o PENSION aborta la
	// corrida.
	StrictParameters bool
}
