package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.WorkedItemRepository = (*WorkedItemRepo)(nil)

const workedItemColumns = `id, company_id, employee_id, period_id, task_code, task_name,
	quantity, unit_price, created_at`

// WorkedItemRepo implementación del puerto WorkedItemRepository.
type WorkedItemRepo struct {
	db Querier
}

// NewWorkedItemRepository construye el adaptador para líneas de destajo.
func NewWorkedItemRepository(db Querier) *WorkedItemRepo {
	return &WorkedItemRepo{db: db}
}

// Create persiste una línea de obra ejecutada.
func (r *WorkedItemRepo) Create(item *entity.WorkedItem) error {
	query := `
		INSERT INTO worked_items (` + workedItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.EmployeeID, item.PeriodID, item.TaskCode, item.TaskName,
		item.Quantity, item.UnitPrice, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert worked item: %w", err)
	}
	return nil
}

// ListByEmployeeAndPeriod devuelve las líneas del empleado en el período.
func (r *WorkedItemRepo) ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.WorkedItem, error) {
	query := `SELECT ` + workedItemColumns + ` FROM worked_items
		WHERE company_id = $1 AND employee_id = $2 AND period_id = $3
		ORDER BY created_at`
	rows, err := r.db.Query(context.Background(), query, companyID, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("list worked items: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkedItem
	for rows.Next() {
		var item entity.WorkedItem
		if err := rows.Scan(
			&item.ID, &item.CompanyID, &item.EmployeeID, &item.PeriodID, &item.TaskCode,
			&item.TaskName, &item.Quantity, &item.UnitPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan worked item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// SumByEmployeeAndPeriod calcula el total de destajo en base, que es lo único
// que el motor necesita del detalle.
func (r *WorkedItemRepo) SumByEmployeeAndPeriod(companyID, employeeID, periodID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity * unit_price), 0)
		FROM worked_items
		WHERE company_id = $1 AND employee_id = $2 AND period_id = $3`
	var total decimal.Decimal
	err := r.db.QueryRow(context.Background(), query, companyID, employeeID, periodID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum worked items: %w", err)
	}
	return total, nil
}
