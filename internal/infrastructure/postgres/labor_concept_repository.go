package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.LaborConceptRepository = (*LaborConceptRepo)(nil)

const laborConceptColumns = `id, company_id, code, name, type, calc_mode, formula, amount,
	percentage, base, afecta_ibc, afecta_parafiscales, es_provision, orden, active,
	created_at, updated_at`

// LaborConceptRepo implementación del puerto LaborConceptRepository.
type LaborConceptRepo struct {
	pool *pgxpool.Pool
}

// NewLaborConceptRepository construye el adaptador para conceptos laborales.
func NewLaborConceptRepository(pool *pgxpool.Pool) *LaborConceptRepo {
	return &LaborConceptRepo{pool: pool}
}

// Create persiste un concepto. El par (company_id, code) es único.
func (r *LaborConceptRepo) Create(c *entity.LaborConcept) error {
	query := `
		INSERT INTO labor_concepts (` + laborConceptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Code, c.Name, c.Type, c.CalcMode, c.Formula, c.Amount,
		c.Percentage, c.Base, c.AfectaIBC, c.AfectaParafiscales, c.EsProvision, c.Orden,
		c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert labor concept: %w", err)
	}
	return nil
}

// Update actualiza la definición de un concepto.
func (r *LaborConceptRepo) Update(c *entity.LaborConcept) error {
	query := `
		UPDATE labor_concepts SET name = $2, type = $3, calc_mode = $4, formula = $5,
			amount = $6, percentage = $7, base = $8, afecta_ibc = $9, afecta_parafiscales = $10,
			es_provision = $11, orden = $12, active = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.Name, c.Type, c.CalcMode, c.Formula, c.Amount, c.Percentage, c.Base,
		c.AfectaIBC, c.AfectaParafiscales, c.EsProvision, c.Orden, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update labor concept: %w", err)
	}
	return nil
}

// GetByID obtiene un concepto por ID.
func (r *LaborConceptRepo) GetByID(id string) (*entity.LaborConcept, error) {
	query := `SELECT ` + laborConceptColumns + ` FROM labor_concepts WHERE id = $1`
	var c entity.LaborConcept
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.Type, &c.CalcMode, &c.Formula, &c.Amount,
		&c.Percentage, &c.Base, &c.AfectaIBC, &c.AfectaParafiscales, &c.EsProvision, &c.Orden,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get labor concept: %w", err)
	}
	return &c, nil
}

// ListActiveByCompany trae los conceptos activos en el orden de aplicación
// que usa el motor de cálculo.
func (r *LaborConceptRepo) ListActiveByCompany(companyID string) ([]*entity.LaborConcept, error) {
	query := `SELECT ` + laborConceptColumns + ` FROM labor_concepts
		WHERE company_id = $1 AND active = true
		ORDER BY orden, code`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list labor concepts: %w", err)
	}
	defer rows.Close()

	var list []*entity.LaborConcept
	for rows.Next() {
		var c entity.LaborConcept
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.Type, &c.CalcMode, &c.Formula, &c.Amount,
			&c.Percentage, &c.Base, &c.AfectaIBC, &c.AfectaParafiscales, &c.EsProvision, &c.Orden,
			&c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan labor concept: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
