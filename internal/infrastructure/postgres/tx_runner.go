package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ payroll.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPayroll inicia una transacción, ejecuta fn con los repos del motor
// atados a la tx y hace Commit o Rollback. Una corrida que falla a mitad de
// camino no deja detalles huérfanos ni saldos de préstamo inconsistentes.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(
	recordRepo repository.PayrollRecordRepository,
	loanRepo repository.LoanRepository,
	garnishmentRepo repository.GarnishmentRepository,
	workedItemRepo repository.WorkedItemRepository,
	noveltyRepo repository.NoveltyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recordRepo := NewPayrollRecordRepository(tx)
	loanRepo := NewLoanRepository(tx)
	garnishmentRepo := NewGarnishmentRepository(tx)
	workedItemRepo := NewWorkedItemRepository(tx)
	noveltyRepo := NewNoveltyRepository(tx)

	if err := fn(recordRepo, loanRepo, garnishmentRepo, workedItemRepo, noveltyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
