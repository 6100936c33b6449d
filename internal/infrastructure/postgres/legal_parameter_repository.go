package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.LegalParameterRepository = (*LegalParameterRepo)(nil)

const legalParamColumns = `id, concept_code, description, total_pct, employee_pct, employer_pct,
	fixed_amount, effective_from, effective_to, active, created_at, updated_at`

// LegalParameterRepo implementación del puerto LegalParameterRepository.
type LegalParameterRepo struct {
	pool *pgxpool.Pool
}

// NewLegalParameterRepository construye el adaptador para parámetros legales.
func NewLegalParameterRepository(pool *pgxpool.Pool) *LegalParameterRepo {
	return &LegalParameterRepo{pool: pool}
}

// Create persiste un nuevo parámetro (una vigencia nueva no edita la anterior).
func (r *LegalParameterRepo) Create(p *entity.LegalParameter) error {
	query := `
		INSERT INTO legal_parameters (` + legalParamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.ConceptCode, p.Description, p.TotalPct, p.EmployeePct, p.EmployerPct,
		p.FixedAmount, p.EffectiveFrom, p.EffectiveTo, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert legal parameter: %w", err)
	}
	return nil
}

// Update actualiza un parámetro (típicamente para cerrar una vigencia).
func (r *LegalParameterRepo) Update(p *entity.LegalParameter) error {
	query := `
		UPDATE legal_parameters SET description = $2, total_pct = $3, employee_pct = $4,
			employer_pct = $5, fixed_amount = $6, effective_from = $7, effective_to = $8,
			active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Description, p.TotalPct, p.EmployeePct, p.EmployerPct,
		p.FixedAmount, p.EffectiveFrom, p.EffectiveTo, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update legal parameter: %w", err)
	}
	return nil
}

// GetByID obtiene un parámetro por ID.
func (r *LegalParameterRepo) GetByID(id string) (*entity.LegalParameter, error) {
	query := `SELECT ` + legalParamColumns + ` FROM legal_parameters WHERE id = $1`
	var p entity.LegalParameter
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ConceptCode, &p.Description, &p.TotalPct, &p.EmployeePct, &p.EmployerPct,
		&p.FixedAmount, &p.EffectiveFrom, &p.EffectiveTo, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get legal parameter: %w", err)
	}
	return &p, nil
}

// ListAsOf trae todos los parámetros vigentes en la fecha. El orden por
// effective_from DESC, id hace determinista el desempate cuando dos vigencias
// del mismo concepto se traslapan.
func (r *LegalParameterRepo) ListAsOf(asOf time.Time) ([]*entity.LegalParameter, error) {
	query := `SELECT ` + legalParamColumns + ` FROM legal_parameters
		WHERE active = true
		  AND effective_from <= $1
		  AND (effective_to IS NULL OR effective_to >= $1)
		ORDER BY effective_from DESC, id`
	return r.list(query, asOf)
}

// List devuelve parámetros con paginación (vista de administración).
func (r *LegalParameterRepo) List(limit, offset int) ([]*entity.LegalParameter, error) {
	query := `SELECT ` + legalParamColumns + ` FROM legal_parameters
		ORDER BY concept_code, effective_from DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *LegalParameterRepo) list(query string, args ...any) ([]*entity.LegalParameter, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list legal parameters: %w", err)
	}
	defer rows.Close()

	var list []*entity.LegalParameter
	for rows.Next() {
		var p entity.LegalParameter
		if err := rows.Scan(
			&p.ID, &p.ConceptCode, &p.Description, &p.TotalPct, &p.EmployeePct, &p.EmployerPct,
			&p.FixedAmount, &p.EffectiveFrom, &p.EffectiveTo, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan legal parameter: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
