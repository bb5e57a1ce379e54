package postgres

import (
	"context"
	"fmt"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo registro dos movimentos do ledger sobre PostgreSQL (pool ou tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de movimentos. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create insere o movimento.
func (r *MovementRepo) Create(mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, composition_id, product_id, packaging_type_id, movement_type,
			source_ucp_id, target_ucp_id, quantity, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.CompositionID, mov.ProductID, mov.PackagingTypeID, mov.Type,
		mov.SourceUcpID, mov.TargetUcpID, mov.Quantity, mov.PerformedBy, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByComposition devolve os movimentos da composição na ordem de registro.
func (r *MovementRepo) ListByComposition(compositionID string) ([]entity.StockMovement, error) {
	query := `
		SELECT id, composition_id, product_id, packaging_type_id, movement_type,
		       source_ucp_id, target_ucp_id, quantity, performed_by, created_at
		FROM stock_movements
		WHERE composition_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, compositionID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []entity.StockMovement
	for rows.Next() {
		var mov entity.StockMovement
		err := rows.Scan(
			&mov.ID, &mov.CompositionID, &mov.ProductID, &mov.PackagingTypeID, &mov.Type,
			&mov.SourceUcpID, &mov.TargetUcpID, &mov.Quantity, &mov.PerformedBy, &mov.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, mov)
	}
	return out, rows.Err()
}
