package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, document_type, document_number, first_name, last_name,
	email, phone, birth_date, hire_date, eps, pension_fund, compensation_box, bank_account,
	status, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.CompanyID, e.DocumentType, e.DocumentNumber, e.FirstName, e.LastName,
		e.Email, e.Phone, e.BirthDate, e.HireDate, e.EPS, e.PensionFund,
		e.CompensationBox, e.BankAccount, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// Update actualiza un empleado existente.
func (r *EmployeeRepo) Update(e *entity.Employee) error {
	query := `
		UPDATE employees SET document_type = $2, document_number = $3, first_name = $4,
			last_name = $5, email = $6, phone = $7, birth_date = $8, hire_date = $9,
			eps = $10, pension_fund = $11, compensation_box = $12, bank_account = $13,
			status = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.DocumentType, e.DocumentNumber, e.FirstName, e.LastName,
		e.Email, e.Phone, e.BirthDate, e.HireDate, e.EPS, e.PensionFund,
		e.CompensationBox, e.BankAccount, e.Status, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByDocument busca por documento dentro de la empresa (unicidad de captura).
func (r *EmployeeRepo) GetByDocument(companyID, documentType, documentNumber string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE company_id = $1 AND document_type = $2 AND document_number = $3`
	return r.scanOne(query, companyID, documentType, documentNumber)
}

// ListByCompany devuelve empleados de la empresa con paginación.
func (r *EmployeeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE company_id = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListActiveByCompany devuelve todos los empleados activos (para la corrida
// masiva del período; sin paginación deliberadamente).
func (r *EmployeeRepo) ListActiveByCompany(companyID string) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE company_id = $1 AND status = 'active' ORDER BY last_name, first_name`
	return r.list(query, companyID)
}

func (r *EmployeeRepo) scanOne(query string, args ...any) (*entity.Employee, error) {
	var e entity.Employee
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&e.ID, &e.CompanyID, &e.DocumentType, &e.DocumentNumber, &e.FirstName, &e.LastName,
		&e.Email, &e.Phone, &e.BirthDate, &e.HireDate, &e.EPS, &e.PensionFund,
		&e.CompensationBox, &e.BankAccount, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) list(query string, args ...any) ([]*entity.Employee, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.DocumentType, &e.DocumentNumber, &e.FirstName, &e.LastName,
			&e.Email, &e.Phone, &e.BirthDate, &e.HireDate, &e.EPS, &e.PensionFund,
			&e.CompensationBox, &e.BankAccount, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
