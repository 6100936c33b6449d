package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.FICRepository = (*FICRepo)(nil)

// FICRepo implementación del puerto FICRepository.
type FICRepo struct {
	pool *pgxpool.Pool
}

// NewFICRepository construye el adaptador para aportes FIC.
func NewFICRepository(pool *pgxpool.Pool) *FICRepo {
	return &FICRepo{pool: pool}
}

// Upsert inserta o reemplaza el agregado del mes. Recalcular el mes es
// idempotente: la clave natural es (company_id, year, month).
func (r *FICRepo) Upsert(c *entity.FICContribution) error {
	query := `
		INSERT INTO fic_contributions (id, company_id, year, month, employee_count,
			base_total, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, year, month)
		DO UPDATE SET employee_count = EXCLUDED.employee_count,
			base_total = EXCLUDED.base_total,
			amount = EXCLUDED.amount,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Year, c.Month, c.EmployeeCount,
		c.BaseTotal, c.Amount, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert fic contribution: %w", err)
	}
	return nil
}

// GetByMonth obtiene el aporte FIC del mes, si ya fue calculado.
func (r *FICRepo) GetByMonth(companyID string, year, month int) (*entity.FICContribution, error) {
	query := `
		SELECT id, company_id, year, month, employee_count, base_total, amount,
			created_at, updated_at
		FROM fic_contributions
		WHERE company_id = $1 AND year = $2 AND month = $3`
	var c entity.FICContribution
	err := r.pool.QueryRow(context.Background(), query, companyID, year, month).Scan(
		&c.ID, &c.CompanyID, &c.Year, &c.Month, &c.EmployeeCount, &c.BaseTotal, &c.Amount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fic contribution: %w", err)
	}
	return &c, nil
}
