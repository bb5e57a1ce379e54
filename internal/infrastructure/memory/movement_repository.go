package memory

import (
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// MovementRepository implementação em memória do registro de movimentos.
type MovementRepository struct {
	store *Store
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

// NewMovementRepository cria o repositório de movimentos.
func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

// Create anexa o movimento ao ledger.
func (r *MovementRepository) Create(mov *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, *mov)
	return nil
}

// ListByComposition devolve os movimentos da composição na ordem de registro.
func (r *MovementRepository) ListByComposition(compositionID string) ([]entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []entity.StockMovement
	for _, mov := range r.store.movements {
		if mov.CompositionID == compositionID {
			out = append(out, mov)
		}
	}
	return out, nil
}
