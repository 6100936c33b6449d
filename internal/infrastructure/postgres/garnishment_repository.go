package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.GarnishmentRepository = (*GarnishmentRepo)(nil)

const garnishmentColumns = `id, company_id, employee_id, class, court_order, notification_date,
	percentage, fixed_amount, total_debt, balance, status, created_at, updated_at`

// GarnishmentRepo implementación del puerto GarnishmentRepository.
type GarnishmentRepo struct {
	db Querier
}

// NewGarnishmentRepository construye el adaptador para embargos judiciales.
func NewGarnishmentRepository(db Querier) *GarnishmentRepo {
	return &GarnishmentRepo{db: db}
}

// Create persiste un embargo notificado.
func (r *GarnishmentRepo) Create(g *entity.JudicialGarnishment) error {
	query := `
		INSERT INTO judicial_garnishments (` + garnishmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(context.Background(), query,
		g.ID, g.CompanyID, g.EmployeeID, g.Class, g.CourtOrder, g.NotificationDate,
		g.Percentage, g.FixedAmount, g.TotalDebt, g.Balance, g.Status, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert garnishment: %w", err)
	}
	return nil
}

// Update actualiza saldo y estado del embargo.
func (r *GarnishmentRepo) Update(g *entity.JudicialGarnishment) error {
	query := `
		UPDATE judicial_garnishments SET percentage = $2, fixed_amount = $3, balance = $4,
			status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		g.ID, g.Percentage, g.FixedAmount, g.Balance, g.Status, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update garnishment: %w", err)
	}
	return nil
}

// GetByID obtiene un embargo por ID.
func (r *GarnishmentRepo) GetByID(id string) (*entity.JudicialGarnishment, error) {
	query := `SELECT ` + garnishmentColumns + ` FROM judicial_garnishments WHERE id = $1`
	var g entity.JudicialGarnishment
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.CompanyID, &g.EmployeeID, &g.Class, &g.CourtOrder, &g.NotificationDate,
		&g.Percentage, &g.FixedAmount, &g.TotalDebt, &g.Balance, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get garnishment: %w", err)
	}
	return &g, nil
}

// ListActiveByEmployee trae los embargos activos del empleado. El orden de
// aplicación por prioridad legal lo resuelve el dominio, no la consulta.
func (r *GarnishmentRepo) ListActiveByEmployee(companyID, employeeID string) ([]*entity.JudicialGarnishment, error) {
	query := `SELECT ` + garnishmentColumns + ` FROM judicial_garnishments
		WHERE company_id = $1 AND employee_id = $2 AND status = 'ACTIVO'
		ORDER BY notification_date, id`
	rows, err := r.db.Query(context.Background(), query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list garnishments: %w", err)
	}
	defer rows.Close()

	var list []*entity.JudicialGarnishment
	for rows.Next() {
		var g entity.JudicialGarnishment
		if err := rows.Scan(
			&g.ID, &g.CompanyID, &g.EmployeeID, &g.Class, &g.CourtOrder, &g.NotificationDate,
			&g.Percentage, &g.FixedAmount, &g.TotalDebt, &g.Balance, &g.Status, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan garnishment: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
