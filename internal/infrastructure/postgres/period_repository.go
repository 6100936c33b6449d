package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.PeriodRepository = (*PeriodRepo)(nil)

const periodColumns = `id, company_id, name, start_date, end_date, payment_date, status,
	created_at, updated_at`

// PeriodRepo implementación del puerto PeriodRepository.
type PeriodRepo struct {
	pool *pgxpool.Pool
}

// NewPeriodRepository construye el adaptador para períodos de nómina.
func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepo {
	return &PeriodRepo{pool: pool}
}

// Create persiste un nuevo período.
func (r *PeriodRepo) Create(p *entity.PayrollPeriod) error {
	query := `
		INSERT INTO payroll_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Name, p.StartDate, p.EndDate, p.PaymentDate, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

// Update actualiza un período (cambio de estado, fechas en BORRADOR).
func (r *PeriodRepo) Update(p *entity.PayrollPeriod) error {
	query := `
		UPDATE payroll_periods SET name = $2, start_date = $3, end_date = $4,
			payment_date = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Name, p.StartDate, p.EndDate, p.PaymentDate, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return nil
}

// GetByID obtiene un período por ID.
func (r *PeriodRepo) GetByID(id string) (*entity.PayrollPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`
	var p entity.PayrollPeriod
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period: %w", err)
	}
	return &p, nil
}

// ListByCompany devuelve los períodos de la empresa, más recientes primero.
func (r *PeriodRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PayrollPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM payroll_periods
		WHERE company_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var list []*entity.PayrollPeriod
	for rows.Next() {
		var p entity.PayrollPeriod
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.StartDate, &p.EndDate, &p.PaymentDate, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// HasOverlap verifica en base si algún período de la empresa se cruza con el
// rango del período dado, excluyéndolo a él mismo (para ediciones).
func (r *PeriodRepo) HasOverlap(p *entity.PayrollPeriod) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE company_id = $1
			  AND id <> $2
			  AND start_date <= $4
			  AND end_date >= $3
		)`
	var exists bool
	err := r.pool.QueryRow(context.Background(), query,
		p.CompanyID, p.ID, p.StartDate, p.EndDate,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check period overlap: %w", err)
	}
	return exists, nil
}
