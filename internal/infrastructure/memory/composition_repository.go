package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
	"github.com/wmslabs/composicao-api/pkg/textnorm"
)

// CompositionRepository implementação em memória da porta de composições.
type CompositionRepository struct {
	store *Store
}

var _ repository.CompositionRepository = (*CompositionRepository)(nil)

// NewCompositionRepository cria o repositório de composições.
func NewCompositionRepository(store *Store) *CompositionRepository {
	return &CompositionRepository{store: store}
}

func cloneComposition(c *entity.Composition) *entity.Composition {
	cp := *c
	cp.Items = make([]entity.CompositionItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// Create persiste uma cópia da composição com seus itens.
func (r *CompositionRepository) Create(comp *entity.Composition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.compositions[comp.ID]; ok {
		return fmt.Errorf("%w: composição %s", domain.ErrDuplicate, comp.ID)
	}
	r.store.compositions[comp.ID] = cloneComposition(comp)
	return nil
}

// GetByID devolve uma cópia da composição ativa, ou nil.
func (r *CompositionRepository) GetByID(id string) (*entity.Composition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	comp, ok := r.store.compositions[id]
	if !ok || !comp.IsActive {
		return nil, nil
	}
	return cloneComposition(comp), nil
}

// GetForUpdate equivale a GetByID; o bloqueio vem da serialização do TxRunner.
func (r *CompositionRepository) GetForUpdate(id string) (*entity.Composition, error) {
	return r.GetByID(id)
}

// List aplica filtros, ordena por criação decrescente e pagina.
func (r *CompositionRepository) List(filter repository.CompositionFilter) ([]entity.Composition, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := textnorm.Fold(filter.Search)
	var matched []*entity.Composition
	for _, comp := range r.store.compositions {
		if !comp.IsActive {
			continue
		}
		if filter.Status != "" && comp.Status != filter.Status {
			continue
		}
		if filter.PalletID != "" && comp.PalletID != filter.PalletID {
			continue
		}
		if search != "" && !strings.Contains(textnorm.Fold(comp.Name), search) {
			continue
		}
		matched = append(matched, comp)
	}
	sort.Slice(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID < matched[b].ID
	})

	total := len(matched)
	if filter.Offset >= total {
		return []entity.Composition{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}
	page := make([]entity.Composition, 0, end-filter.Offset)
	for _, comp := range matched[filter.Offset:end] {
		page = append(page, *cloneComposition(comp))
	}
	return page, total, nil
}

// UpdateStatus grava status e auditoria com checagem de versão otimista.
func (r *CompositionRepository) UpdateStatus(comp *entity.Composition, expectedVersion int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.compositions[comp.ID]
	if !ok || !current.IsActive {
		return fmt.Errorf("%w: composição %s", domain.ErrNotFound, comp.ID)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: versão %d desatualizada (atual %d)", domain.ErrConflict, expectedVersion, current.Version)
	}
	next := cloneComposition(current)
	next.Status = comp.Status
	next.ApprovedBy = comp.ApprovedBy
	next.ApprovedAt = comp.ApprovedAt
	next.ExecutedAt = comp.ExecutedAt
	next.UpdatedAt = comp.UpdatedAt
	next.Version = expectedVersion + 1
	r.store.compositions[comp.ID] = next
	return nil
}

// SoftDelete desativa a composição e seus itens.
func (r *CompositionRepository) SoftDelete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.compositions[id]
	if !ok || !current.IsActive {
		return fmt.Errorf("%w: composição %s", domain.ErrNotFound, id)
	}
	next := cloneComposition(current)
	next.IsActive = false
	for i := range next.Items {
		next.Items[i].IsActive = false
	}
	r.store.compositions[id] = next
	return nil
}
