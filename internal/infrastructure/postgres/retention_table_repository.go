package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.RetentionTableRepository = (*RetentionTableRepo)(nil)

// RetentionTableRepo implementación del puerto RetentionTableRepository.
// Los rangos viven en la tabla hija retention_brackets y se cargan siempre
// junto a su tabla padre.
type RetentionTableRepo struct {
	pool *pgxpool.Pool
}

// NewRetentionTableRepository construye el adaptador para tablas de retención.
func NewRetentionTableRepository(pool *pgxpool.Pool) *RetentionTableRepo {
	return &RetentionTableRepo{pool: pool}
}

// Create persiste la tabla y sus rangos en una sola transacción.
func (r *RetentionTableRepo) Create(t *entity.RetentionTable) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin retention table tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO retention_tables (id, description, effective_from, effective_to, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Description, t.EffectiveFrom, t.EffectiveTo, t.Active, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert retention table: %w", err)
	}

	for i, b := range t.Brackets {
		_, err = tx.Exec(ctx, `
			INSERT INTO retention_brackets (table_id, position, from_uvt, to_uvt, rate_pct)
			VALUES ($1, $2, $3, $4, $5)`,
			t.ID, i, b.FromUVT, b.ToUVT, b.RatePct,
		)
		if err != nil {
			return fmt.Errorf("insert retention bracket: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetAsOf devuelve la tabla vigente en la fecha. Ante vigencias traslapadas
// gana la de effective_from más reciente; id desempata de forma estable.
func (r *RetentionTableRepo) GetAsOf(asOf time.Time) (*entity.RetentionTable, error) {
	ctx := context.Background()
	var t entity.RetentionTable
	err := r.pool.QueryRow(ctx, `
		SELECT id, description, effective_from, effective_to, active, created_at
		FROM retention_tables
		WHERE active = true
		  AND effective_from <= $1
		  AND (effective_to IS NULL OR effective_to >= $1)
		ORDER BY effective_from DESC, id
		LIMIT 1`, asOf,
	).Scan(&t.ID, &t.Description, &t.EffectiveFrom, &t.EffectiveTo, &t.Active, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get retention table: %w", err)
	}

	t.Brackets, err = r.loadBrackets(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RetentionTableRepo) loadBrackets(ctx context.Context, tableID string) ([]entity.RetentionBracket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_uvt, to_uvt, rate_pct
		FROM retention_brackets
		WHERE table_id = $1
		ORDER BY position`, tableID,
	)
	if err != nil {
		return nil, fmt.Errorf("list retention brackets: %w", err)
	}
	defer rows.Close()

	var brackets []entity.RetentionBracket
	for rows.Next() {
		var b entity.RetentionBracket
		if err := rows.Scan(&b.FromUVT, &b.ToUVT, &b.RatePct); err != nil {
			return nil, fmt.Errorf("scan retention bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}
