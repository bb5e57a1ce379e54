package memory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// InventoryRepository implementação em memória dos saldos de estoque.
type InventoryRepository struct {
	store *Store
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

// NewInventoryRepository cria o repositório de saldos.
func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

// ListAvailableForUpdate devolve os registros com saldo em ordem FIFO.
func (r *InventoryRepository) ListAvailableForUpdate(productID, packagingTypeID string) ([]*entity.InventoryRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InventoryRecord
	for _, rec := range r.store.inventory {
		if rec.ProductID != productID || rec.PackagingTypeID != packagingTypeID {
			continue
		}
		if !rec.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

// GetForUpdate devolve o registro da UCP para produto/embalagem, ou nil.
func (r *InventoryRepository) GetForUpdate(ucpID, productID, packagingTypeID string) (*entity.InventoryRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, rec := range r.store.inventory {
		if rec.UcpID == ucpID && rec.ProductID == productID && rec.PackagingTypeID == packagingTypeID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

// UpdateQuantity substitui o registro por uma cópia com o novo saldo.
func (r *InventoryRepository) UpdateQuantity(recordID string, quantity decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.inventory[recordID]
	if !ok {
		return fmt.Errorf("%w: registro de estoque %s", domain.ErrNotFound, recordID)
	}
	cp := *rec
	cp.Quantity = quantity
	r.store.inventory[recordID] = &cp
	return nil
}

// Create insere um novo registro de saldo.
func (r *InventoryRepository) Create(rec *entity.InventoryRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.inventory[rec.ID]; ok {
		return fmt.Errorf("%w: registro de estoque %s", domain.ErrDuplicate, rec.ID)
	}
	cp := *rec
	r.store.inventory[rec.ID] = &cp
	return nil
}

// ListByUcp devolve os registros de uma UCP ordenados por criação.
func (r *InventoryRepository) ListByUcp(ucpID string) ([]*entity.InventoryRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InventoryRecord
	for _, rec := range r.store.inventory {
		if rec.UcpID != ucpID {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}
