package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

const contractColumns = `id, company_id, employee_id, contract_type, salary, risk_class,
	start_date, end_date, active, created_at, updated_at`

// ContractRepo implementación del puerto ContractRepository sobre PostgreSQL.
type ContractRepo struct {
	pool *pgxpool.Pool
}

// NewContractRepository construye el adaptador de persistencia para contratos.
func NewContractRepository(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

// Create persiste un nuevo contrato (se crea inactivo; Activate lo enciende).
func (r *ContractRepo) Create(c *entity.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.EmployeeID, c.ContractType, c.Salary, c.RiskClass,
		c.StartDate, c.EndDate, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// Update actualiza un contrato existente.
func (r *ContractRepo) Update(c *entity.Contract) error {
	query := `
		UPDATE contracts SET contract_type = $2, salary = $3, risk_class = $4,
			start_date = $5, end_date = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.ContractType, c.Salary, c.RiskClass,
		c.StartDate, c.EndDate, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetActiveByEmployee devuelve el contrato activo del empleado (a lo sumo uno,
// garantizado por Activate y un índice parcial único).
func (r *ContractRepo) GetActiveByEmployee(companyID, employeeID string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE company_id = $1 AND employee_id = $2 AND active = true`
	return r.scanOne(query, companyID, employeeID)
}

// ListByEmployee devuelve el historial de contratos del empleado.
func (r *ContractRepo) ListByEmployee(companyID, employeeID string) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE company_id = $1 AND employee_id = $2 ORDER BY start_date DESC`
	rows, err := r.pool.Query(context.Background(), query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.EmployeeID, &c.ContractType, &c.Salary, &c.RiskClass,
			&c.StartDate, &c.EndDate, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Activate enciende el contrato y apaga los hermanos en la misma sentencia:
// el invariante de un solo contrato activo por empleado no depende de que el
// caller recuerde desactivar el anterior.
func (r *ContractRepo) Activate(companyID, employeeID, contractID string) error {
	query := `
		UPDATE contracts SET active = (id = $3), updated_at = now()
		WHERE company_id = $1 AND employee_id = $2`
	_, err := r.pool.Exec(context.Background(), query, companyID, employeeID, contractID)
	if err != nil {
		return fmt.Errorf("activate contract: %w", err)
	}
	return nil
}

// SumActiveSalaries suma los salarios de los contratos activos de la empresa,
// la nómina agregada contra el umbral de exoneración de parafiscales.
func (r *ContractRepo) SumActiveSalaries(companyID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(salary), 0) FROM contracts
		WHERE company_id = $1 AND active = true`, companyID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active salaries: %w", err)
	}
	return total, nil
}

func (r *ContractRepo) scanOne(query string, args ...any) (*entity.Contract, error) {
	var c entity.Contract
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.ContractType, &c.Salary, &c.RiskClass,
		&c.StartDate, &c.EndDate, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}
