package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ composition.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
// É a garantia de atomicidade da montagem e desmontagem: os SELECT FOR UPDATE
// dos repositórios seguram as filas até o Commit/Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	compRepo repository.CompositionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	compRepo := NewCompositionRepository(tx)
	invRepo := NewInventoryRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(compRepo, invRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
