package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, company_id, employee_id, amount, installment, balance,
	start_date, status, created_at, updated_at`

// LoanRepo implementación del puerto LoanRepository. El motor de cálculo
// actualiza saldos dentro de su transacción, por eso opera sobre Querier.
type LoanRepo struct {
	db Querier
}

// NewLoanRepository construye el adaptador para préstamos.
func NewLoanRepository(db Querier) *LoanRepo {
	return &LoanRepo{db: db}
}

// Create persiste un préstamo nuevo.
func (r *LoanRepo) Create(l *entity.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(context.Background(), query,
		l.ID, l.CompanyID, l.EmployeeID, l.Amount, l.Installment, l.Balance,
		l.StartDate, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// Update actualiza saldo y estado del préstamo.
func (r *LoanRepo) Update(l *entity.Loan) error {
	query := `
		UPDATE loans SET installment = $2, balance = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		l.ID, l.Installment, l.Balance, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	var l entity.Loan
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.Amount, &l.Installment, &l.Balance,
		&l.StartDate, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// ListActiveByEmployee trae los préstamos con saldo pendiente del empleado,
// en orden de antigüedad (los más viejos se descuentan primero).
func (r *LoanRepo) ListActiveByEmployee(companyID, employeeID string) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE company_id = $1 AND employee_id = $2 AND status = 'ACTIVO'
		ORDER BY start_date, id`
	rows, err := r.db.Query(context.Background(), query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.EmployeeID, &l.Amount, &l.Installment, &l.Balance,
			&l.StartDate, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
