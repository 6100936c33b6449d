package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.NoveltyRepository = (*NoveltyRepo)(nil)

const noveltyColumns = `id, company_id, employee_id, period_id, type, days, hours, notes, created_at`

// NoveltyRepo implementación del puerto NoveltyRepository.
type NoveltyRepo struct {
	db Querier
}

// NewNoveltyRepository construye el adaptador para novedades del período.
func NewNoveltyRepository(db Querier) *NoveltyRepo {
	return &NoveltyRepo{db: db}
}

// Create persiste una novedad (ausencia, incapacidad, horas extra).
func (r *NoveltyRepo) Create(n *entity.Novelty) error {
	query := `
		INSERT INTO novelties (` + noveltyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(context.Background(), query,
		n.ID, n.CompanyID, n.EmployeeID, n.PeriodID, n.Type, n.Days, n.Hours, n.Notes, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert novelty: %w", err)
	}
	return nil
}

// ListByEmployeeAndPeriod devuelve las novedades del empleado en el período.
func (r *NoveltyRepo) ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.Novelty, error) {
	query := `SELECT ` + noveltyColumns + ` FROM novelties
		WHERE company_id = $1 AND employee_id = $2 AND period_id = $3
		ORDER BY created_at`
	rows, err := r.db.Query(context.Background(), query, companyID, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("list novelties: %w", err)
	}
	defer rows.Close()

	var list []*entity.Novelty
	for rows.Next() {
		var n entity.Novelty
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.EmployeeID, &n.PeriodID, &n.Type, &n.Days, &n.Hours,
			&n.Notes, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan novelty: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
