package memory

import (
	"context"

	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// TxRunner executa o callback com exclusão mútua sobre o Store, restaurando o
// snapshot anterior quando o callback falha. Isso reproduz a semântica
// tudo-ou-nada das transações de banco: sob concorrência, cada Run enxerga o
// estado commitado pelo anterior.
type TxRunner struct {
	store *Store
}

// NewTxRunner cria o runner transacional em memória.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run serializa a transação e desfaz toda mutação se fn devolver erro.
func (r *TxRunner) Run(ctx context.Context, fn func(
	compRepo repository.CompositionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := r.store.takeSnapshot()
	err := fn(
		NewCompositionRepository(r.store),
		NewInventoryRepository(r.store),
		NewMovementRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
